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
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/internal/agent"
)

func TestRunMCP_unknownTransport(t *testing.T) {
	transport = "smoke-signals"
	t.Cleanup(func() { transport = "stdio" })

	err := runMCP(t.Context(), CmdMCP, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

// freeAddr returns a free localhost address.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRunMCP_http(t *testing.T) {
	cfg.DataDir = t.TempDir()
	cfg.ListenAddr = freeAddr(t)
	transport = "http"
	t.Cleanup(func() { transport = "stdio" })

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- runMCP(ctx, CmdMCP, nil) }()

	// the chat client's toolbox talks to the running server
	var (
		tools *agent.MCPTools
		err   error
	)
	require.Eventually(t, func() bool {
		tools, err = agent.Dial(ctx, "http://"+cfg.ListenAddr+"/mcp", nil)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	tt, err := tools.ListTools(ctx)
	require.NoError(t, err)
	assert.Len(t, tt, 3)
	require.NoError(t, tools.Close())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
