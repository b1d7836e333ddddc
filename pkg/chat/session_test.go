package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	mcpadapter "github.com/aretw0/todomcp/pkg/adapters/mcp"
	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	tools   []string
	prompts []string
	reply   string
	isError bool
	err     error
	schema  string
}

func (f *fakeCaller) ListTools(context.Context) ([]mcpadapter.ToolInfo, error) {
	out := make([]mcpadapter.ToolInfo, 0, len(f.tools))
	for _, n := range f.tools {
		out = append(out, mcpadapter.ToolInfo{Name: n})
	}
	return out, nil
}

func (f *fakeCaller) CallTool(_ context.Context, name string, args map[string]any) (string, bool, error) {
	f.prompts = append(f.prompts, args["prompt"].(string))
	return f.reply, f.isError, f.err
}

func (f *fakeCaller) ReadSchema(context.Context) (string, error) {
	if f.schema == "" {
		return "", errors.New("resource not found")
	}
	return f.schema, nil
}

type scriptedReader struct {
	lines []string
	final error
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", r.final
	}
	l := r.lines[0]
	r.lines = r.lines[1:]
	return l, nil
}

func (r *scriptedReader) Close() error { return nil }

func TestSession_ForwardsLinesUntilExit(t *testing.T) {
	caller := &fakeCaller{tools: []string{mcpadapter.AssistantTool}, reply: "Task created successfully!"}
	reader := &scriptedReader{lines: []string{"buy milk", "  ", "show tasks", "exit", "never sent"}}
	var out bytes.Buffer

	err := NewSession(caller, reader, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"buy milk", "show tasks"}, caller.prompts)
	assert.Contains(t, out.String(), "Available tools: todoist_assistant")
	assert.Equal(t, 2, strings.Count(out.String(), "Todoist Result:"))
	assert.Contains(t, out.String(), "Exiting...")
}

func TestSession_EndsOnEOFAndInterrupt(t *testing.T) {
	for _, final := range []error{errEOF(), readline.ErrInterrupt} {
		caller := &fakeCaller{tools: []string{mcpadapter.AssistantTool}}
		var out bytes.Buffer

		err := NewSession(caller, &scriptedReader{final: final}, &out).Run(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, caller.prompts)
	}
}

func TestSession_CallErrorKeepsLooping(t *testing.T) {
	caller := &fakeCaller{tools: []string{mcpadapter.AssistantTool}, err: errors.New("connection reset")}
	reader := &scriptedReader{lines: []string{"a", "b", "quit"}}
	var out bytes.Buffer

	require.NoError(t, NewSession(caller, reader, &out).Run(context.Background()))

	assert.Len(t, caller.prompts, 2)
	assert.Equal(t, 2, strings.Count(out.String(), "connection reset"))
}

func TestSession_SchemaCommand(t *testing.T) {
	caller := &fakeCaller{tools: []string{mcpadapter.AssistantTool}, schema: `{"actions":[{"name":"create_task"}]}`}
	reader := &scriptedReader{lines: []string{"Schema", "exit"}}
	var out bytes.Buffer

	require.NoError(t, NewSession(caller, reader, &out).Run(context.Background()))

	assert.Empty(t, caller.prompts, "schema is not forwarded to the assistant")
	assert.Contains(t, out.String(), `{"actions":[{"name":"create_task"}]}`)

	caller = &fakeCaller{tools: []string{mcpadapter.AssistantTool}}
	out.Reset()
	require.NoError(t, NewSession(caller, &scriptedReader{lines: []string{"schema"}, final: errEOF()}, &out).Run(context.Background()))
	assert.Contains(t, out.String(), "Error reading action schema: resource not found")
}

func TestSession_MissingAssistantTool(t *testing.T) {
	caller := &fakeCaller{tools: []string{"create_task"}}
	reader := &scriptedReader{lines: []string{"buy milk"}, final: errEOF()}
	var out bytes.Buffer

	require.NoError(t, NewSession(caller, reader, &out).Run(context.Background()))

	assert.Empty(t, caller.prompts)
	assert.Contains(t, out.String(), "tool is not available")
}

func TestSession_RendersSuccessOnly(t *testing.T) {
	render := func(s string) (string, error) { return "<<" + s + ">>", nil }

	caller := &fakeCaller{tools: []string{mcpadapter.AssistantTool}, reply: "ok"}
	var out bytes.Buffer
	require.NoError(t, NewSession(caller, &scriptedReader{lines: []string{"x"}, final: errEOF()}, &out,
		WithRenderer(render)).Run(context.Background()))
	assert.Contains(t, out.String(), "<<ok>>")

	caller = &fakeCaller{tools: []string{mcpadapter.AssistantTool}, reply: "Error: nope", isError: true}
	out.Reset()
	require.NoError(t, NewSession(caller, &scriptedReader{lines: []string{"x"}, final: errEOF()}, &out,
		WithRenderer(render)).Run(context.Background()))
	assert.Contains(t, out.String(), "Error: nope")
	assert.NotContains(t, out.String(), "<<")
}

func TestPlainReader(t *testing.T) {
	var prompt bytes.Buffer
	r := NewPlainReader(strings.NewReader("one\ntwo\n"), &prompt)

	l, err := r.Readline()
	require.NoError(t, err)
	assert.Equal(t, "one", l)

	l, err = r.Readline()
	require.NoError(t, err)
	assert.Equal(t, "two", l)

	_, err = r.Readline()
	assert.ErrorIs(t, err, errEOF())
	assert.Equal(t, 3, strings.Count(prompt.String(), "Enter your request"))
}

func errEOF() error { return io.EOF }
