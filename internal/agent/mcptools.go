// Copyright (c) 2026 The orgchart Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package agent

// In this file: the MCP client side of the tools.

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcplib "github.com/mark3labs/mcp-go/mcp"
)

const (
	clientName    = "orgchart-chat"
	clientVersion = "1.0.0"

	// DefSessionTimeout is the HTTP timeout of MCP requests.
	DefSessionTimeout = 30 * time.Second
)

// ServerURL returns the MCP endpoint of a local server listening on port.
func ServerURL(port int) string {
	return fmt.Sprintf("http://localhost:%d/mcp", port)
}

// MCPTools is a [Toolbox] served by an MCP server.
type MCPTools struct {
	c *client.Client
}

// Dial connects to the streamable HTTP MCP server at url.
func Dial(ctx context.Context, url string, headers map[string]string) (*MCPTools, error) {
	c, err := client.NewStreamableHttpClient(url,
		transport.WithHTTPHeaders(headers),
		transport.WithHTTPTimeout(DefSessionTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("mcp client: %w", err)
	}
	t, err := NewMCPTools(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("mcp server %s: %w", url, err)
	}
	return t, nil
}

// NewMCPTools starts the client and performs the MCP handshake.  The client
// is closed on error.
func NewMCPTools(ctx context.Context, c *client.Client) (*MCPTools, error) {
	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, err
	}
	var req mcplib.InitializeRequest
	req.Params.ProtocolVersion = mcplib.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcplib.Implementation{Name: clientName, Version: clientVersion}
	if _, err := c.Initialize(ctx, req); err != nil {
		c.Close()
		return nil, err
	}
	return &MCPTools{c: c}, nil
}

func (t *MCPTools) ListTools(ctx context.Context) ([]mcplib.Tool, error) {
	res, err := t.c.ListTools(ctx, mcplib.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return res.Tools, nil
}

func (t *MCPTools) CallTool(ctx context.Context, name string, args map[string]any) (*mcplib.CallToolResult, error) {
	var req mcplib.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return t.c.CallTool(ctx, req)
}

func (t *MCPTools) Close() error {
	return t.c.Close()
}
