package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/todomcp"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct{ reply string }

func (s stubModel) Complete(context.Context, ports.CompletionRequest) (string, error) {
	return s.reply, nil
}
func (stubModel) Name() string { return "stub" }

type stubTasks struct {
	created []domain.NewTask
}

func (s *stubTasks) CreateTask(_ context.Context, t domain.NewTask) (domain.Task, error) {
	s.created = append(s.created, t)
	return domain.Task{ID: "1", Content: t.Content, Due: &domain.Due{String: t.DueString}, Priority: t.Priority}, nil
}

func (s *stubTasks) ListTasks(context.Context, string) ([]domain.Task, error) {
	return []domain.Task{{ID: "1", Content: "Write report", Priority: 2}}, nil
}

func newTestServer(t *testing.T, reply string) (*Server, *stubTasks) {
	t.Helper()
	tasks := &stubTasks{}
	a, err := todomcp.New(nil,
		todomcp.WithCompletionClient(stubModel{reply: reply}),
		todomcp.WithTaskAPI(tasks),
	)
	require.NoError(t, err)
	return NewServer(a), tasks
}

func newTestClient(t *testing.T, s *Server) *Client {
	t.Helper()
	c, err := NewInProcessClient(context.Background(), s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestServer_ListTools(t *testing.T) {
	s, _ := newTestServer(t, "")
	c := newTestClient(t, s)

	tools, err := c.ListTools(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{AssistantTool, "create_task", "list_tasks"}, names)
}

func TestServer_AssistantTool(t *testing.T) {
	s, tasks := newTestServer(t, `{"intent": "create_task", "params": {"content": "Buy milk", "due_string": "tomorrow"}}`)
	c := newTestClient(t, s)

	text, isError, err := c.CallTool(context.Background(), AssistantTool, map[string]any{
		"prompt": "Add milk to my shopping list for tomorrow",
	})
	require.NoError(t, err)
	assert.False(t, isError)
	assert.Equal(t, "Task created successfully!\nContent: Buy milk\nDue: tomorrow", text)
	require.Len(t, tasks.created, 1)
}

func TestServer_AssistantToolUnknownIntent(t *testing.T) {
	s, _ := newTestServer(t, "not json")
	c := newTestClient(t, s)

	text, isError, err := c.CallTool(context.Background(), AssistantTool, map[string]any{"prompt": "hello"})
	require.NoError(t, err, "tool failures are not protocol errors")
	assert.True(t, isError)
	assert.Contains(t, text, "rephrasing")
}

func TestServer_TypedTools(t *testing.T) {
	s, tasks := newTestServer(t, "")
	c := newTestClient(t, s)
	ctx := context.Background()

	text, isError, err := c.CallTool(ctx, "create_task", map[string]any{"content": "Pay rent", "priority": 3})
	require.NoError(t, err)
	assert.False(t, isError, text)
	require.Len(t, tasks.created, 1)
	assert.Equal(t, 3, tasks.created[0].Priority)
	assert.Equal(t, "today", tasks.created[0].DueString)

	text, isError, err = c.CallTool(ctx, "create_task", map[string]any{})
	require.NoError(t, err)
	assert.True(t, isError)
	assert.Contains(t, text, "content")
	assert.Len(t, tasks.created, 1)

	text, isError, err = c.CallTool(ctx, "list_tasks", nil)
	require.NoError(t, err)
	assert.False(t, isError)
	assert.Contains(t, text, "1. Write report")
}

func TestServer_SchemaResource(t *testing.T) {
	s, _ := newTestServer(t, "")
	c := newTestClient(t, s)

	raw, err := c.ReadSchema(context.Background())
	require.NoError(t, err)
	assert.Contains(t, raw, `"create_task"`)
	assert.Contains(t, raw, `"due_string"`)
}

func TestToolFor(t *testing.T) {
	spec, ok := domain.DefaultSchema().Lookup(domain.ActionCreateTask)
	require.True(t, ok)

	tool := toolFor(spec)
	assert.Equal(t, "create_task", tool.Name)
	assert.Equal(t, []string{"content"}, tool.InputSchema.Required)
	assert.Contains(t, tool.InputSchema.Properties, "due_string")
	assert.Contains(t, tool.InputSchema.Properties, "priority")

	prio, ok := tool.InputSchema.Properties["priority"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", prio["type"])
	assert.Contains(t, prio["description"], "default 1")
}

func TestServer_CORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, "")
	h := s.SSEHandler("http://localhost")

	req := httptest.NewRequest(http.MethodOptions, "/message", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
