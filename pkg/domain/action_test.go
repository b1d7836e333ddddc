package domain_test

import (
	"testing"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchema_Actions(t *testing.T) {
	schema := domain.DefaultSchema()

	assert.Equal(t, []string{domain.ActionCreateTask, domain.ActionListTasks}, schema.Names())
	assert.False(t, schema.Has(domain.ActionUnknown))

	create, ok := schema.Lookup(domain.ActionCreateTask)
	require.True(t, ok)

	content, ok := create.Param("content")
	require.True(t, ok)
	assert.True(t, content.Required)
	assert.False(t, content.HasDefault())

	priority, ok := create.Param("priority")
	require.True(t, ok)
	assert.Equal(t, 1, priority.Default)
	assert.Equal(t, 1, priority.Min)
	assert.Equal(t, 4, priority.Max)
}

func TestApplyDefaults(t *testing.T) {
	create, _ := domain.DefaultSchema().Lookup(domain.ActionCreateTask)

	in := map[string]any{"content": "Buy milk", "due_string": "tomorrow"}
	out := create.ApplyDefaults(in)

	assert.Equal(t, map[string]any{
		"content":    "Buy milk",
		"due_string": "tomorrow",
		"priority":   1,
	}, out)
	assert.NotContains(t, in, "priority", "input must not be mutated")
}

func TestApplyDefaults_NilValueIsReplaced(t *testing.T) {
	list, _ := domain.DefaultSchema().Lookup(domain.ActionListTasks)

	out := list.ApplyDefaults(map[string]any{"filter": nil})
	assert.Equal(t, "", out["filter"])

	out = list.ApplyDefaults(nil)
	assert.Equal(t, "", out["filter"])
}

func TestMissing(t *testing.T) {
	create, _ := domain.DefaultSchema().Lookup(domain.ActionCreateTask)

	tests := []struct {
		name   string
		params map[string]any
		want   []string
	}{
		{"Present", map[string]any{"content": "x"}, nil},
		{"Absent", map[string]any{}, []string{"content"}},
		{"Nil", map[string]any{"content": nil}, []string{"content"}},
		{"Blank", map[string]any{"content": "   "}, []string{"content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, create.Missing(tt.params))
		})
	}
}

func TestNewActionSchema_Rejects(t *testing.T) {
	_, err := domain.NewActionSchema(domain.ActionSpec{Name: "a"}, domain.ActionSpec{Name: "a"})
	assert.Error(t, err)

	_, err = domain.NewActionSchema(domain.ActionSpec{Name: domain.ActionUnknown})
	assert.Error(t, err)

	_, err = domain.NewActionSchema(domain.ActionSpec{})
	assert.Error(t, err)
}

func TestActions_ReturnsCopy(t *testing.T) {
	schema := domain.DefaultSchema()
	actions := schema.Actions()
	actions[0].Name = "mutated"

	assert.Equal(t, domain.ActionCreateTask, schema.Names()[0])
}

func TestSchema_ParamsAreNotShared(t *testing.T) {
	dueDefault := func(schema domain.ActionSchema) any {
		create, ok := schema.Lookup(domain.ActionCreateTask)
		require.True(t, ok)
		for _, p := range create.Params {
			if p.Name == "due_string" {
				return p.Default
			}
		}
		return nil
	}

	t.Run("Actions", func(t *testing.T) {
		schema := domain.DefaultSchema()
		for _, a := range schema.Actions() {
			for i := range a.Params {
				a.Params[i].Default = "never"
			}
		}
		assert.Equal(t, "today", dueDefault(schema))
	})

	t.Run("Lookup", func(t *testing.T) {
		schema := domain.DefaultSchema()
		create, _ := schema.Lookup(domain.ActionCreateTask)
		for i := range create.Params {
			create.Params[i].Default = "never"
		}
		assert.Equal(t, "today", dueDefault(schema))
	})

	t.Run("Constructor input", func(t *testing.T) {
		params := []domain.ParamSpec{{Name: "due_string", Default: "today"}}
		schema, err := domain.NewActionSchema(domain.ActionSpec{Name: domain.ActionCreateTask, Params: params})
		require.NoError(t, err)

		params[0].Default = "never"
		assert.Equal(t, "today", dueDefault(schema))
	})
}
