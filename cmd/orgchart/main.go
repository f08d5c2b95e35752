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

// Command orgchart builds interactive organisation charts from HR
// spreadsheets and serves them to AI agents over MCP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/chat"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/files"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/base"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/help"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/mcp"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/render"
)

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func init() {
	loadSecrets(secrets)

	base.Orgchart.Commands = []*base.Command{
		mcp.CmdMCP,
		chat.CmdChat,
		render.CmdRender,
		files.CmdFiles,
		CmdVersion,
	}
	base.Usage = mainUsage
}

func main() {
	flag.Usage = base.Usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		base.Usage()
	}

	if args[0] == "help" {
		help.Help(os.Stdout, args[1:])
		base.Exit()
	}

	cmd, err := findCommand(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		base.SetExitStatus(base.SInvalidParameters)
		base.Exit()
	}

	if err := invoke(cmd, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", base.CmdName, cmd.Name(), err)
		base.SetExitStatus(base.SGenericError)
	}
	base.Exit()
}

// findCommand returns the runnable command with the given name.
func findCommand(name string) (*base.Command, error) {
	cmd := base.Orgchart.Lookup(name)
	if cmd == nil || !cmd.Runnable() {
		return nil, fmt.Errorf("%s %s: unknown command\nRun '%s help' for usage.", base.CmdName, name, base.CmdName)
	}
	return cmd, nil
}

// invoke parses the command flags, initialises logging and tracing, and
// runs the command.
func invoke(cmd *base.Command, args []string) error {
	if !cmd.CustomFlags {
		cfg.SetBaseFlags(&cmd.Flag, cmd.FlagMask)
		cmd.Flag.Usage = func() { cmd.Usage() }
		if err := cmd.Flag.Parse(args); err != nil {
			base.SetExitStatus(base.SInvalidParameters)
			return err
		}
		args = cmd.Flag.Args()
	}

	lg, err := initLog(cfg.LogFile, cfg.JSONHandler, cfg.Verbose)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	cfg.Log = lg

	stop := initTrace(cfg.TraceFile)
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	// the second interrupt terminates the process.
	context.AfterFunc(ctx, cancel)

	lg.DebugContext(ctx, "running command", "command", cmd.Name(), "args", strings.Join(args, " "), "version", version)
	if err := cmd.Run(ctx, cmd, args); err != nil {
		if errors.Is(err, context.Canceled) {
			lg.InfoContext(ctx, "operation cancelled")
			return nil
		}
		return err
	}
	return nil
}

func mainUsage() {
	help.PrintUsage(os.Stderr, base.Orgchart)
	base.SetExitStatus(base.SHelpRequested)
	base.Exit()
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}
