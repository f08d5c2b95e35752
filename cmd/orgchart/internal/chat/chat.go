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

package chat

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/bootstrap"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/base"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/ui"
	"github.com/rbacmatcher/orgchart/internal/agent"
	"github.com/rbacmatcher/orgchart/internal/osext"
)

//go:embed assets/chat.md
var mdChat string

var CmdChat = &base.Command{
	UsageLine:  "orgchart chat [flags]",
	Short:      "talk to the org chart assistant",
	Long:       mdChat,
	FlagMask:   cfg.OmitDataFlags | cfg.OmitOutputFlag | cfg.OmitListenFlag,
	PrintFlags: true,
	Run:        runChat,
}

var errInvalidPort = errors.New("Invalid port number.")

type chatParams struct {
	port      int
	server    string
	persona   string
	maxRounds int
}

var params chatParams

// terminal streams, replaced in tests.
var (
	stdin         io.Reader = os.Stdin
	stdout        io.Writer = os.Stdout
	isInteractive           = osext.IsInteractive
)

func init() {
	CmdChat.Flag.IntVar(&params.port, "port", 0, "MCP server `port` on localhost, prompted for if not set")
	CmdChat.Flag.StringVar(&params.server, "server", "", "MCP server `URL`, overrides -port")
	CmdChat.Flag.StringVar(&params.persona, "persona", agent.DefPersonaFile, "persona `file`, the built-in persona is used if it does not exist")
	CmdChat.Flag.IntVar(&params.maxRounds, "max-rounds", agent.DefMaxRounds, "maximum tool `rounds` per question")
}

func runChat(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log
	in := bufio.NewReader(stdin)

	url, err := serverURL(stdout, in, params)
	if err != nil {
		if errors.Is(err, base.ErrOpCancelled) {
			return nil
		}
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}
	if err := cfg.LLM.Validate(); err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("%w, see \"orgchart help chat\"", err)
	}

	persona, err := agent.LoadPersona(params.persona, time.Now())
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}

	lg.DebugContext(ctx, "connecting to the MCP server", "url", url)
	tools, err := agent.Dial(ctx, url, nil)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return fmt.Errorf("failed to connect to the MCP server at %s: %w", url, err)
	}
	defer tools.Close()

	var llm agent.LLM = agent.NewOpenAI(cfg.LLM)
	if isInteractive() {
		llm = thinking{LLM: llm, w: stdout}
	}
	a := agent.New(
		llm,
		tools,
		agent.WithSystemPrompt(persona),
		agent.WithMaxRounds(params.maxRounds),
		agent.WithLogger(lg),
	)
	fmt.Fprintf(stdout, "Connected to %s, type %q to quit.\n", url, agent.ExitCommand)
	if err := a.Run(ctx, in, stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	return nil
}

// thinking shows a spinner on w while the model is working.
type thinking struct {
	agent.LLM
	w io.Writer
}

func (t thinking) Complete(ctx context.Context, msgs []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolParam) (openai.ChatCompletionMessage, error) {
	stop := bootstrap.TimedSpinner(ctx, t.w, "thinking...")
	defer stop()
	return t.LLM.Complete(ctx, msgs, tools)
}

// serverURL returns the MCP server URL from the parameters, asking for the
// port if none was given.
func serverURL(w io.Writer, r io.Reader, p chatParams) (string, error) {
	if p.server != "" {
		return p.server, nil
	}
	port := p.port
	if port == 0 {
		s, err := askPort(w, r)
		if err != nil {
			return "", err
		}
		if port, err = parsePort(s); err != nil {
			return "", err
		}
	}
	if err := validPort(port); err != nil {
		return "", err
	}
	return agent.ServerURL(port), nil
}

// askPort asks for the port with a form on a terminal, and reads a line
// from r otherwise.
func askPort(w io.Writer, r io.Reader) (string, error) {
	if isInteractive() {
		return ui.Input("MCP server port", "Port of the running \"orgchart mcp -transport http\"", func(s string) error {
			_, err := parsePort(s)
			return err
		})
	}
	return base.InputWR(w, r, "MCP server port: ")
}

func parsePort(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errInvalidPort
	}
	return n, validPort(n)
}

func validPort(n int) error {
	if n < 1 || n > 65535 {
		return errInvalidPort
	}
	return nil
}
