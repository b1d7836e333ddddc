package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Known action names.
const (
	ActionCreateTask = "create_task"
	ActionListTasks  = "list_tasks"

	// ActionUnknown is the sentinel for prompts that could not be classified.
	ActionUnknown = "unknown"
)

// ParamKind describes the value type of an action parameter.
type ParamKind string

const (
	ParamString  ParamKind = "string"
	ParamInteger ParamKind = "integer"
)

// ParamSpec declares one parameter of an action.
type ParamSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Kind        ParamKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required" yaml:"required"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	// Min and Max bound integer parameters. Zero means unbounded.
	Min int `json:"min,omitempty" yaml:"min,omitempty"`
	Max int `json:"max,omitempty" yaml:"max,omitempty"`
}

// HasDefault reports whether the parameter declares a default value.
func (p ParamSpec) HasDefault() bool {
	return p.Default != nil
}

// ActionSpec declares an action the assistant can perform.
type ActionSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Params      []ParamSpec `json:"params" yaml:"params"`
}

// Param returns the named parameter spec.
func (a ActionSpec) Param(name string) (ParamSpec, bool) {
	for _, p := range a.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// ApplyDefaults returns a copy of params with every absent parameter that
// declares a default filled in. The input map is never modified.
func (a ActionSpec) ApplyDefaults(params map[string]any) map[string]any {
	out := make(map[string]any, len(params)+len(a.Params))
	for k, v := range params {
		out[k] = v
	}
	for _, p := range a.Params {
		if v, ok := out[p.Name]; ok && v != nil {
			continue
		}
		if p.HasDefault() {
			out[p.Name] = p.Default
		}
	}
	return out
}

// Missing lists required parameters that are absent, nil or blank strings.
func (a ActionSpec) Missing(params map[string]any) []string {
	var missing []string
	for _, p := range a.Params {
		if !p.Required {
			continue
		}
		v, ok := params[p.Name]
		if !ok || v == nil {
			missing = append(missing, p.Name)
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, p.Name)
		}
	}
	return missing
}

// ActionSchema is the ordered set of actions known to the assistant.
// It is built once at startup and never modified afterwards.
type ActionSchema struct {
	actions []ActionSpec
}

// NewActionSchema builds a schema from the given actions.
// Action names must be unique and must not collide with ActionUnknown.
func NewActionSchema(actions ...ActionSpec) (ActionSchema, error) {
	seen := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		if a.Name == "" {
			return ActionSchema{}, fmt.Errorf("action name is required")
		}
		if a.Name == ActionUnknown {
			return ActionSchema{}, fmt.Errorf("action name %q is reserved", a.Name)
		}
		if _, dup := seen[a.Name]; dup {
			return ActionSchema{}, fmt.Errorf("duplicate action %q", a.Name)
		}
		seen[a.Name] = struct{}{}
	}

	copied := make([]ActionSpec, len(actions))
	for i, a := range actions {
		copied[i] = a.clone()
	}
	return ActionSchema{actions: copied}, nil
}

// MustActionSchema is like NewActionSchema but panics on error.
func MustActionSchema(actions ...ActionSpec) ActionSchema {
	s, err := NewActionSchema(actions...)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSchema returns the two task actions: create_task and list_tasks.
func DefaultSchema() ActionSchema {
	return MustActionSchema(
		ActionSpec{
			Name:        ActionCreateTask,
			Description: "Create a new task",
			Params: []ParamSpec{
				{Name: "content", Kind: ParamString, Required: true, Description: "The task description/content"},
				{Name: "due_string", Kind: ParamString, Default: "today", Description: "When the task is due"},
				{Name: "priority", Kind: ParamInteger, Default: 1, Min: 1, Max: 4, Description: "Task priority from 1-4, where 4 is highest"},
			},
		},
		ActionSpec{
			Name:        ActionListTasks,
			Description: "List/view existing tasks",
			Params: []ParamSpec{
				{Name: "filter", Kind: ParamString, Default: "", Description: "Any filtering criteria mentioned"},
			},
		},
	)
}

// Actions returns a copy of the declared actions in order.
func (s ActionSchema) Actions() []ActionSpec {
	out := make([]ActionSpec, len(s.actions))
	for i, a := range s.actions {
		out[i] = a.clone()
	}
	return out
}

// Names returns the action names in declaration order.
func (s ActionSchema) Names() []string {
	names := make([]string, 0, len(s.actions))
	for _, a := range s.actions {
		names = append(names, a.Name)
	}
	return names
}

// Lookup finds an action by name.
func (s ActionSchema) Lookup(name string) (ActionSpec, bool) {
	for _, a := range s.actions {
		if a.Name == name {
			return a.clone(), true
		}
	}
	return ActionSpec{}, false
}

// Has reports whether name is a known action.
func (s ActionSchema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// clone copies the spec so callers never share Params with the schema.
func (a ActionSpec) clone() ActionSpec {
	a.Params = slices.Clone(a.Params)
	return a
}

// MarshalJSON renders the schema as {"actions": [...]}.
func (s ActionSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Actions []ActionSpec `json:"actions"`
	}{Actions: s.actions})
}
