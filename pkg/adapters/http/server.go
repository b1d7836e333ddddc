package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/todomcp"
	"github.com/aretw0/todomcp/internal/logging"
	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodySize bounds request bodies; prompts are far smaller.
const maxBodySize = 1 << 20

// AssistRequest is the body of POST /assist.
type AssistRequest struct {
	Prompt string `json:"prompt"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Content   string `json:"content"`
	DueString string `json:"due_string,omitempty"`
	Priority  int    `json:"priority,omitempty"`
}

// ActionResponse carries the outcome of one action.
type ActionResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// AssistResponse adds the resolved intent to ActionResponse.
type AssistResponse struct {
	Intent string         `json:"intent"`
	Params map[string]any `json:"params"`
	ActionResponse
}

// Server serves the assistant over REST.
type Server struct {
	Assistant ports.Assistant
	spec      *openapi3.T
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer sets the registry exposed on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the assistant. It fails when the
// embedded OpenAPI document does not validate.
func NewHandler(assistant ports.Assistant, opts ...Option) (http.Handler, error) {
	spec, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Assistant: assistant,
		spec:      spec,
		gatherer:  prometheus.DefaultGatherer,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Post("/assist", s.Assist)
	r.Post("/tasks", s.CreateTask)
	r.Get("/tasks", s.ListTasks)
	r.Get("/schema", s.GetSchema)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Assist handles the POST /assist request.
func (s *Server) Assist(w http.ResponseWriter, r *http.Request) {
	var body AssistRequest
	if !s.decode(w, r, "AssistRequest", &body) {
		return
	}

	ctx := domain.WithRequestID(r.Context(), uuid.NewString())
	intent, err := s.Assistant.Resolve(ctx, body.Prompt)
	if err != nil {
		s.logger.Info("Assist: falling back to unknown intent", "request_id", domain.RequestID(ctx), "error", err)
	}
	result := s.Assistant.Dispatch(ctx, intent)

	writeJSON(w, s.logger, AssistResponse{
		Intent:         intent.Action,
		Params:         intent.Params,
		ActionResponse: toResponse(result),
	})
}

// CreateTask handles the POST /tasks request.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body CreateTaskRequest
	if !s.decode(w, r, "CreateTaskRequest", &body) {
		return
	}

	params := map[string]any{"content": body.Content}
	if body.DueString != "" {
		params["due_string"] = body.DueString
	}
	if body.Priority != 0 {
		params["priority"] = body.Priority
	}

	result := s.Assistant.Dispatch(r.Context(), domain.ResolvedIntent{Action: domain.ActionCreateTask, Params: params})
	writeJSON(w, s.logger, toResponse(result))
}

// ListTasks handles the GET /tasks request.
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	params := map[string]any{"filter": r.URL.Query().Get("filter")}
	result := s.Assistant.Dispatch(r.Context(), domain.ResolvedIntent{Action: domain.ActionListTasks, Params: params})
	writeJSON(w, s.logger, toResponse(result))
}

// GetSchema handles the GET /schema request.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, s.Assistant.Schema())
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}

	writeJSON(w, s.logger, map[string]string{
		"app":         "todomcp-http",
		"version":     todomcp.Version,
		"api_version": apiVersion,
	})
}

// decode reads a JSON body, checks it against the named schema and fills
// out. It writes a 400 and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, schema string, out any) bool {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	if err := validateBody(s.spec, schema, raw); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		s.logger.Warn("Request rejected by schema", "path", r.URL.Path, "error", err)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func toResponse(result domain.ActionResult) ActionResponse {
	if result.IsError() {
		return ActionResponse{Error: result.Message()}
	}
	return ActionResponse{Result: result.Text()}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}
