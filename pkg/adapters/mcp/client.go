package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/todomcp"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolInfo describes a tool offered by a server.
type ToolInfo struct {
	Name        string
	Description string
}

// Client is a session with an MCP server. It is safe to call from one
// goroutine at a time.
type Client struct {
	mc *client.Client
}

// NewSSEClient connects to the SSE endpoint at url and initializes a session.
func NewSSEClient(ctx context.Context, url string) (*Client, error) {
	mc, err := client.NewSSEMCPClient(url)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE client: %w", err)
	}
	if err := mc.Start(ctx); err != nil {
		_ = mc.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	return initialize(ctx, mc)
}

// NewStdioClient launches command and talks to it over stdin/stdout.
func NewStdioClient(ctx context.Context, command string, args ...string) (*Client, error) {
	mc, err := client.NewStdioMCPClient(command, nil, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}
	return initialize(ctx, mc)
}

// NewInProcessClient connects directly to s without a transport.
func NewInProcessClient(ctx context.Context, s *Server) (*Client, error) {
	mc, err := client.NewInProcessClient(s.MCPServer())
	if err != nil {
		return nil, err
	}
	if err := mc.Start(ctx); err != nil {
		_ = mc.Close()
		return nil, err
	}
	return initialize(ctx, mc)
}

func initialize(ctx context.Context, mc *client.Client) (*Client, error) {
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    "todomcp-chat",
		Version: todomcp.Version,
	}

	if _, err := mc.Initialize(ctx, req); err != nil {
		_ = mc.Close()
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	return &Client{mc: mc}, nil
}

// ListTools returns the tools the server offers.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	res, err := c.mc.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	tools := make([]ToolInfo, 0, len(res.Tools))
	for _, t := range res.Tools {
		tools = append(tools, ToolInfo{Name: t.Name, Description: t.Description})
	}
	return tools, nil
}

// CallTool invokes name with args. Tool-level failures are reported through
// isError with the text intact; err is reserved for protocol failures.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (text string, isError bool, err error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := c.mc.CallTool(ctx, req)
	if err != nil {
		return "", false, fmt.Errorf("call %s: %w", name, err)
	}
	return joinText(res.Content), res.IsError, nil
}

// ReadSchema fetches the action schema resource as raw JSON.
func (c *Client) ReadSchema(ctx context.Context) (string, error) {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = SchemaURI

	res, err := c.mc.ReadResource(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", SchemaURI, err)
	}
	for _, content := range res.Contents {
		switch rc := content.(type) {
		case mcp.TextResourceContents:
			return rc.Text, nil
		case *mcp.TextResourceContents:
			return rc.Text, nil
		}
	}
	return "", errors.New("schema resource has no text content")
}

// Close ends the session and releases the transport.
func (c *Client) Close() error {
	return c.mc.Close()
}

func joinText(contents []mcp.Content) string {
	parts := make([]string, 0, len(contents))
	for _, content := range contents {
		switch tc := content.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
