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

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/bootstrap"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/base"
	internalmcp "github.com/rbacmatcher/orgchart/internal/mcp"
	"github.com/rbacmatcher/orgchart/internal/osext"
)

//go:embed assets/mcp.md
var mdMCP string

var CmdMCP = &base.Command{
	UsageLine:  "orgchart mcp [flags]",
	Short:      "start the MCP server",
	Long:       mdMCP,
	FlagMask:   cfg.OmitLLMFlags,
	PrintFlags: true,
	Run:        runMCP,
}

var transport string

func init() {
	CmdMCP.Flag.StringVar(&transport, "transport", string(internalmcp.TransportStdio), "MCP transport: \"stdio\" or \"http\"")
}

func runMCP(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log

	t := internalmcp.Transport(strings.ToLower(transport))
	if t != internalmcp.TransportStdio && t != internalmcp.TransportHTTP {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("mcp: unknown transport %q (use \"stdio\" or \"http\")", transport)
	}

	svc := bootstrap.Service()
	for _, dir := range svc.Dirs() {
		if err := osext.DirExists(dir); err != nil {
			lg.WarnContext(ctx, "mcp: search directory is not available", "dir", dir, "error", err)
		}
	}

	srv := internalmcp.New(svc, internalmcp.WithLogger(lg))
	if t == internalmcp.TransportHTTP {
		lg.InfoContext(ctx, "mcp: http transport", "addr", cfg.ListenAddr)
	}
	if err := srv.Serve(ctx, t, cfg.ListenAddr); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	return nil
}
