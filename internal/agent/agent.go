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

// Package agent implements the conversational client: it relays user input
// to a chat completion model, runs the tools the model asks for on the MCP
// server and prints the model's replies.
package agent

//go:generate mockgen -destination=mock_agent/mock_agent.go . LLM,Toolbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"
)

var (
	// ErrUpstream is returned when the model endpoint fails.
	ErrUpstream = errors.New("language model request failed")
	// ErrTooManyRounds is returned when the model keeps calling tools.
	ErrTooManyRounds = errors.New("too many tool rounds")
)

// DefMaxRounds is the default limit of tool rounds per user turn.
const DefMaxRounds = 8

// LLM is a chat completion model.
type LLM interface {
	// Complete returns the next assistant message for the conversation.
	Complete(ctx context.Context, msgs []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolParam) (openai.ChatCompletionMessage, error)
}

// Toolbox is the set of tools the model may call.
type Toolbox interface {
	ListTools(ctx context.Context) ([]mcplib.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcplib.CallToolResult, error)
}

// Agent holds a single conversation.
type Agent struct {
	id        string
	llm       LLM
	tools     Toolbox
	system    string
	maxRounds int
	lg        *slog.Logger

	defs    []openai.ChatCompletionToolParam
	history []openai.ChatCompletionMessageParamUnion
}

// Option configures the Agent.
type Option func(*Agent)

// WithSystemPrompt sets the system prompt, usually the result of
// [LoadPersona].
func WithSystemPrompt(s string) Option {
	return func(a *Agent) {
		a.system = s
	}
}

// WithMaxRounds sets the maximum number of tool rounds per turn.  Values
// below 1 are ignored.
func WithMaxRounds(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxRounds = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(a *Agent) {
		if lg != nil {
			a.lg = lg
		}
	}
}

// New creates an Agent.
func New(llm LLM, tools Toolbox, opts ...Option) *Agent {
	a := &Agent{
		id:        uuid.NewString(),
		llm:       llm,
		tools:     tools,
		maxRounds: DefMaxRounds,
		lg:        slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.lg = a.lg.With("conversation", a.id)
	return a
}

// ID returns the conversation identifier, it is attached to every log
// record of the conversation.
func (a *Agent) ID() string {
	return a.id
}

// Ask sends the user text to the model, executes the tool calls the model
// requests and returns the model's final answer.  On error the turn is
// removed from the conversation.
func (a *Agent) Ask(ctx context.Context, text string) (string, error) {
	defs, err := a.toolDefs(ctx)
	if err != nil {
		return "", err
	}

	mark := len(a.history)
	a.history = append(a.history, openai.UserMessage(text))
	for round := 0; ; round++ {
		msg, err := a.llm.Complete(ctx, a.messages(), defs)
		if err != nil {
			a.history = a.history[:mark]
			return "", fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		a.history = append(a.history, msg.ToParam())
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}
		if round >= a.maxRounds {
			a.history = a.history[:mark]
			return "", fmt.Errorf("%w: gave up after %d", ErrTooManyRounds, a.maxRounds)
		}
		for _, tc := range msg.ToolCalls {
			out := a.call(ctx, tc)
			a.history = append(a.history, openai.ToolMessage(out, tc.ID))
		}
	}
}

// Len returns the number of messages in the conversation, excluding the
// system prompt.
func (a *Agent) Len() int {
	return len(a.history)
}

func (a *Agent) messages() []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(a.history)+1)
	if a.system != "" {
		msgs = append(msgs, openai.SystemMessage(a.system))
	}
	return append(msgs, a.history...)
}

// toolDefs lists the tools once per conversation.
func (a *Agent) toolDefs(ctx context.Context) ([]openai.ChatCompletionToolParam, error) {
	if a.defs != nil {
		return a.defs, nil
	}
	tt, err := a.tools.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing tools: %w", err)
	}
	defs := make([]openai.ChatCompletionToolParam, 0, len(tt))
	for _, t := range tt {
		d, err := toolParam(t)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	a.lg.DebugContext(ctx, "tools discovered", "n", len(defs))
	a.defs = defs
	return defs, nil
}

// call runs the tool call and returns the text to give back to the model.
// Tool failures are reported to the model, not to the caller.
func (a *Agent) call(ctx context.Context, tc openai.ChatCompletionMessageToolCall) string {
	lg := a.lg.With("tool", tc.Function.Name, "id", tc.ID)
	var args map[string]any
	if s := strings.TrimSpace(tc.Function.Arguments); s != "" {
		if err := json.Unmarshal([]byte(s), &args); err != nil {
			lg.WarnContext(ctx, "invalid tool arguments", "arguments", s, "error", err)
			return fmt.Sprintf("Error: invalid arguments for %s: %s", tc.Function.Name, err)
		}
	}
	lg.InfoContext(ctx, "calling tool", "arguments", args)
	res, err := a.tools.CallTool(ctx, tc.Function.Name, args)
	if err != nil {
		lg.ErrorContext(ctx, "tool call failed", "error", err)
		return fmt.Sprintf("Error: %s failed: %s", tc.Function.Name, err)
	}
	out := resultText(res)
	if res.IsError {
		lg.WarnContext(ctx, "tool returned an error", "result", out)
		return "Error: " + out
	}
	return out
}

// resultText concatenates the text content of the result.
func resultText(res *mcplib.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(mcplib.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// toolParam converts the MCP tool description to a function definition.
func toolParam(t mcplib.Tool) (openai.ChatCompletionToolParam, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return openai.ChatCompletionToolParam{}, fmt.Errorf("tool %s: %w", t.Name, err)
	}
	var wire struct {
		InputSchema map[string]any `json:"inputSchema"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return openai.ChatCompletionToolParam{}, fmt.Errorf("tool %s: %w", t.Name, err)
	}
	if wire.InputSchema == nil {
		wire.InputSchema = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	fn := openai.FunctionDefinitionParam{
		Name:       t.Name,
		Parameters: openai.FunctionParameters(wire.InputSchema),
	}
	if t.Description != "" {
		fn.Description = openai.String(t.Description)
	}
	return openai.ChatCompletionToolParam{Function: fn}, nil
}
