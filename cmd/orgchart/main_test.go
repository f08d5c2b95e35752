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

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/base"
)

func TestCommands(t *testing.T) {
	seen := make(map[string]bool)
	for _, cmd := range base.Orgchart.Commands {
		name := cmd.Name()
		assert.False(t, seen[name], "duplicate command %q", name)
		seen[name] = true
		assert.True(t, cmd.Runnable(), name)
		assert.NotEmpty(t, cmd.Short, name)
		assert.NotEmpty(t, cmd.Long, name)
	}
	for _, want := range []string{"mcp", "chat", "render", "files", "version"} {
		assert.True(t, seen[want], want)
	}
}

func Test_findCommand(t *testing.T) {
	cmd, err := findCommand("render")
	require.NoError(t, err)
	assert.Equal(t, "render", cmd.Name())

	_, err = findCommand("export")
	assert.ErrorContains(t, err, "unknown command")
}

func Test_invoke(t *testing.T) {
	t.Cleanup(func() { cfg.Verbose = false; cfg.LogFile = "" })

	t.Run("parses flags and passes arguments", func(t *testing.T) {
		logfile := filepath.Join(t.TempDir(), "orgchart.log")
		var got []string
		cmd := &base.Command{
			UsageLine: "orgchart test [flags] <args>",
			FlagMask:  cfg.OmitAll,
			Run: func(ctx context.Context, cmd *base.Command, args []string) error {
				got = args
				cfg.Log.InfoContext(ctx, "hello from the command")
				return nil
			},
		}
		require.NoError(t, invoke(cmd, []string{"-log", logfile, "staff", "roster"}))
		assert.Equal(t, []string{"staff", "roster"}, got)
		assert.Equal(t, logfile, cfg.LogFile)
		assert.FileExists(t, logfile)
	})
	t.Run("cancelled command is not an error", func(t *testing.T) {
		cmd := &base.Command{
			UsageLine: "orgchart test",
			FlagMask:  cfg.OmitAll,
			Run: func(ctx context.Context, cmd *base.Command, args []string) error {
				return context.Canceled
			},
		}
		assert.NoError(t, invoke(cmd, nil))
	})
	t.Run("interrupt cancels the command", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("os.Interrupt cannot be sent on windows")
		}
		cmd := &base.Command{
			UsageLine: "orgchart test",
			FlagMask:  cfg.OmitAll,
			Run: func(ctx context.Context, cmd *base.Command, args []string) error {
				p, err := os.FindProcess(os.Getpid())
				if err != nil {
					return err
				}
				if err := p.Signal(os.Interrupt); err != nil {
					return err
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(5 * time.Second):
					return errors.New("context was not cancelled")
				}
			},
		}
		assert.NoError(t, invoke(cmd, nil))
	})
	t.Run("error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		cmd := &base.Command{
			UsageLine: "orgchart test",
			FlagMask:  cfg.OmitAll,
			Run: func(ctx context.Context, cmd *base.Command, args []string) error {
				return boom
			},
		}
		assert.ErrorIs(t, invoke(cmd, nil), boom)
	})
}

func Test_versionRun(t *testing.T) {
	var buf bytes.Buffer
	versionOut = &buf
	t.Cleanup(func() { versionOut = os.Stdout })
	require.NoError(t, versionRun(t.Context(), CmdVersion, nil))
	assert.Equal(t, "dev (commit: none) built on: unknown\n", buf.String())
}
