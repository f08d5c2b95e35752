// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
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

package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/rbacmatcher/orgchart/internal/orgchart"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

const (
	serverName    = "orgchart-mcp"
	serverVersion = "1.0.0"
)

const (
	// DefListenAddr is the default address of the HTTP transport.
	DefListenAddr = ":3000"
	endpoint      = "/mcp"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport, the endpoint is "/mcp".
	TransportHTTP Transport = "http"
)

// Charter is the org chart pipeline exposed by the server.
type Charter interface {
	Generate(ctx context.Context, req orgchart.Request) (*orgchart.Result, error)
	CostCenters(ctx context.Context, hint string) (resolve.Match, []string, error)
	Files(ctx context.Context) ([]resolve.Candidate, error)
	Dirs() []string
}

// Server wraps an MCP server and the chart pipeline.
type Server struct {
	mcp    *mcpsrv.MCPServer
	svc    Charter
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger, nil means slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// New creates a new MCP server backed by the given Charter.  The server is
// populated with all available tools but does not start listening until one
// of the Serve* methods is called.
func New(svc Charter, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithInstructions(instructions(svc.Dirs())),
		mcpsrv.WithRecovery(),
	)

	// Register all tools.
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	return s
}

// instructions returns the server instructions that describe the server to
// the connecting agent.
func instructions(dirs []string) string {
	return fmt.Sprintf(`You are connected to the org chart MCP server.

It builds interactive organisation charts from Excel (.xlsx, .xlsm) and CSV
spreadsheets found in: %s.

Available tools allow you to:
- Generate an org chart from a spreadsheet, optionally filtered by column values
- List the cost centers in a spreadsheet
- List the available spreadsheets

File names given by the user do not need to be exact, the closest match is used.
If no file matches well enough, the error lists the closest names: ask the user
which one they meant.
`, strings.Join(dirs, ", "))
}

// MCPServer returns the underlying MCP server, i.e. for in-process clients.
func (s *Server) MCPServer() *mcpsrv.MCPServer {
	return s.mcp
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as ":3000".
// Besides the MCP endpoint, the server answers "GET /healthz".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	httpSrv := &http.Server{Addr: addr, Handler: middleware.Logger(mux)}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)
	// a custom server does its own routing.
	mux.Handle(endpoint, streamSrv)
	mux.HandleFunc("GET /healthz", healthz)

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr, "endpoint", endpoint)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp http server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		s.logger.Info("mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	})
	return eg.Wait()
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// Serve runs the server with the given transport.
func (s *Server) Serve(ctx context.Context, t Transport, addr string) error {
	switch Transport(strings.ToLower(string(t))) {
	case TransportStdio, "":
		return s.ServeStdio(ctx)
	case TransportHTTP:
		if addr == "" {
			addr = DefListenAddr
		}
		return s.ServeHTTP(ctx, addr)
	default:
		return fmt.Errorf("unknown transport %q (use %q or %q)", t, TransportStdio, TransportHTTP)
	}
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolGenerateOrgChart(),
		s.toolListCostCenters(),
		s.toolListSpreadsheets(),
	}
}

// AddTool adds an additional tool to the MCP server.  This can be called after
// New but before serving starts.
func (s *Server) AddTool(tool mcpsrv.ServerTool) {
	s.mcp.AddTool(tool.Tool, tool.Handler)
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr is a helper that wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to JSON and returns a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
