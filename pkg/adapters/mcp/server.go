package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/todomcp"
	"github.com/aretw0/todomcp/internal/logging"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// ServerName is advertised during the MCP handshake.
	ServerName = "todoist-mcp"
	// AssistantTool is the natural-language entry point.
	AssistantTool = "todoist_assistant"
	// SchemaURI exposes the action schema as a resource.
	SchemaURI = "todomcp://schema"
)

// Server wraps an Assistant and exposes it as an MCP Server.
type Server struct {
	assistant ports.Assistant
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(assistant ports.Assistant, opts ...ServerOption) *Server {
	s := &Server{
		assistant: assistant,
		mcpServer: server.NewMCPServer(ServerName, todomcp.Version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts it down
// when ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.SSEHandler(baseURL),
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// SSEHandler returns the /sse and /message routes for baseURL.
func (s *Server) SSEHandler(baseURL string) http.Handler {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", s.corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", s.corsMiddleware(sseServer.MessageHandler()))
	return mux
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: todoist_assistant
	s.mcpServer.AddTool(mcp.NewTool(AssistantTool,
		mcp.WithDescription("All-in-one Todoist assistant that can create tasks or fetch task lists based on natural language prompts."),
		mcp.WithString("prompt", mcp.Required(),
			mcp.Description("Natural language prompt describing what to do (create task or list tasks)")),
	), s.handleAssistant)

	// One typed tool per schema action.
	for _, spec := range s.assistant.Schema().Actions() {
		s.mcpServer.AddTool(toolFor(spec), s.handleAction(spec.Name))
	}
}

// toolFor derives the MCP tool definition from an action spec.
func toolFor(spec domain.ActionSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Description)}

	for _, p := range spec.Params {
		props := []mcp.PropertyOption{mcp.Description(describeParam(p))}
		if p.Required {
			props = append(props, mcp.Required())
		}

		switch p.Kind {
		case domain.ParamInteger:
			if p.Min != 0 || p.Max != 0 {
				props = append(props, mcp.Min(float64(p.Min)), mcp.Max(float64(p.Max)))
			}
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		default:
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(spec.Name, opts...)
}

func describeParam(p domain.ParamSpec) string {
	if !p.HasDefault() {
		return p.Description
	}
	if str, ok := p.Default.(string); ok && str == "" {
		return p.Description
	}
	return fmt.Sprintf("%s (default %v)", p.Description, p.Default)
}

func (s *Server) handleAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, _ := request.GetArguments()["prompt"].(string)
	s.logger.Debug("MCP assistant call", "size", len(prompt))

	return toToolResult(s.assistant.Handle(ctx, prompt)), nil
}

func (s *Server) handleAction(action string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := make(map[string]any)
		for k, v := range request.GetArguments() {
			params[k] = v
		}
		s.logger.Debug("MCP action call", "action", action)

		return toToolResult(s.assistant.Dispatch(ctx, domain.ResolvedIntent{Action: action, Params: params})), nil
	}
}

// toToolResult keeps failures inside the tool result so the caller sees
// the reason as text rather than as a protocol error.
func toToolResult(result domain.ActionResult) *mcp.CallToolResult {
	if result.IsError() {
		return mcp.NewToolResultError(result.String())
	}
	return mcp.NewToolResultText(result.Text())
}

func (s *Server) registerResources() {
	// EXPOSE: todomcp://schema
	s.mcpServer.AddResource(mcp.NewResource(SchemaURI, "Action Schema",
		mcp.WithResourceDescription("Actions the assistant can resolve, with their parameters"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.assistant.Schema())
		if err != nil {
			return nil, fmt.Errorf("failed to encode schema: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      SchemaURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
