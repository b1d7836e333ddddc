// Package todoist is a minimal client for the Todoist REST API covering the
// two calls the assistant needs: create a task and list tasks.
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
)

const (
	// DefaultBaseURL is the Todoist REST v2 endpoint.
	DefaultBaseURL = "https://api.todoist.com/rest/v2"
	// DefaultTimeout bounds each call when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 64 << 10
)

var _ ports.TaskAPI = (*Client)(nil)

// Client calls the Todoist REST API. It is safe for concurrent use and keeps
// no per-request state.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout bounds each outbound call. Expiry surfaces as a NetworkError.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a client authenticating with token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTask issues POST /tasks.
func (c *Client) CreateTask(ctx context.Context, task domain.NewTask) (domain.Task, error) {
	const op = "create task"

	body, err := json.Marshal(task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%s: failed to marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks", bytes.NewReader(body))
	if err != nil {
		return domain.Task{}, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created domain.Task
	if err := c.do(req, op, &created); err != nil {
		return domain.Task{}, err
	}
	return created, nil
}

// ListTasks issues GET /tasks. The filter query parameter is omitted when
// filter is empty.
func (c *Client) ListTasks(ctx context.Context, filter string) ([]domain.Task, error) {
	const op = "list tasks"

	u := c.baseURL + "/tasks"
	if filter != "" {
		u += "?" + url.Values{"filter": {filter}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	var tasks []domain.Task
	if err := c.do(req, op, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.RemoteAPIError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}
