// Package chat implements the interactive prompt loop that forwards each
// line to the assistant tool of an MCP server.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/todomcp/internal/logging"
	mcpadapter "github.com/aretw0/todomcp/pkg/adapters/mcp"
	"github.com/chzyer/readline"
)

// ToolCaller is the part of an MCP session the loop needs.
type ToolCaller interface {
	ListTools(ctx context.Context) ([]mcpadapter.ToolInfo, error)
	CallTool(ctx context.Context, name string, args map[string]any) (string, bool, error)
	ReadSchema(ctx context.Context) (string, error)
}

// LineReader yields one line of user input per call. It returns io.EOF or
// readline.ErrInterrupt when the user is done.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

var examples = []string{
	"Create a task to buy groceries tomorrow",
	"Show me my tasks for today",
	"Add high priority task finish report by Friday",
}

// Session is one interactive conversation. It holds no state between lines.
type Session struct {
	caller ToolCaller
	reader LineReader
	out    io.Writer
	render func(string) (string, error)
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithRenderer formats results before printing, e.g. with glamour.
func WithRenderer(render func(string) (string, error)) Option {
	return func(s *Session) {
		s.render = render
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session reading from reader and writing to out.
func NewSession(caller ToolCaller, reader LineReader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		caller: caller,
		reader: reader,
		out:    out,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops until the user types exit or quit, input ends, or ctx is done.
// Failures of a single request are printed and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	tools, err := s.caller.ListTools(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(tools))
	available := false
	for _, t := range tools {
		names = append(names, t.Name)
		if t.Name == mcpadapter.AssistantTool {
			available = true
		}
	}
	s.intro(names)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.reader.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				s.printf("Exiting...\n")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isExit(line) {
			s.printf("Exiting...\n")
			return nil
		}
		if strings.EqualFold(line, "schema") {
			s.schema(ctx)
			continue
		}

		if !available {
			s.printf("Error: The %s tool is not available on the server.\n", mcpadapter.AssistantTool)
			continue
		}
		s.ask(ctx, line)
	}
}

func (s *Session) intro(tools []string) {
	s.printf("\n=== Todoist MCP Client ===\n")
	s.printf("Available tools: %s\n", strings.Join(tools, ", "))
	s.printf("Type 'schema' to list the supported actions, 'exit' to quit\n\n")
	s.printf("You can ask to create tasks or view your tasks in natural language.\n")
	s.printf("Examples:\n")
	for _, e := range examples {
		s.printf("- %s\n", e)
	}
}

func (s *Session) schema(ctx context.Context) {
	doc, err := s.caller.ReadSchema(ctx)
	if err != nil {
		s.logger.Warn("Schema read failed", "error", err)
		s.printf("Error reading action schema: %v\n", err)
		return
	}
	s.printf("%s\n", strings.TrimRight(doc, "\n"))
}

func (s *Session) ask(ctx context.Context, line string) {
	text, isError, err := s.caller.CallTool(ctx, mcpadapter.AssistantTool, map[string]any{"prompt": line})
	if err != nil {
		s.logger.Warn("Tool call failed", "error", err)
		s.printf("Error calling Todoist assistant: %v\n", err)
		return
	}
	if text == "" {
		s.printf("Error: No response content received from the server.\n")
		return
	}

	if s.render != nil && !isError {
		if rendered, err := s.render(text); err == nil {
			text = rendered
		}
	}

	s.printf("\nTodoist Result:\n--------------\n%s\n--------------\n", strings.TrimRight(text, "\n"))
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func isExit(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit":
		return true
	}
	return false
}
