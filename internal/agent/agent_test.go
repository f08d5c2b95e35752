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

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rbacmatcher/orgchart/internal/agent/mock_agent"
)

var testTools = []mcplib.Tool{
	mcplib.NewTool("generate_org_chart",
		mcplib.WithDescription("Generate an org chart."),
		mcplib.WithString("file_reference", mcplib.Required()),
	),
}

func newTestAgent(t *testing.T, opts ...Option) (*Agent, *mock_agent.MockLLM, *mock_agent.MockToolbox) {
	t.Helper()
	ctrl := gomock.NewController(t)
	llm := mock_agent.NewMockLLM(ctrl)
	tb := mock_agent.NewMockToolbox(ctrl)
	return New(llm, tb, opts...), llm, tb
}

func toolCall(id, name, args string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		ToolCalls: []openai.ChatCompletionMessageToolCall{
			{ID: id, Function: openai.ChatCompletionMessageToolCallFunction{Name: name, Arguments: args}},
		},
	}
}

func text(s string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Content: s}
}

// lastToolMessage returns the content of the trailing tool message.
func lastToolMessage(t *testing.T, msgs []openai.ChatCompletionMessageParamUnion) (id, content string) {
	t.Helper()
	require.NotEmpty(t, msgs)
	tm := msgs[len(msgs)-1].OfTool
	require.NotNil(t, tm, "last message is not a tool message")
	return tm.ToolCallID, tm.Content.OfString.Value
}

func TestAgent_Ask_plainReply(t *testing.T) {
	a, llm, tb := newTestAgent(t, WithSystemPrompt("be brief"))
	tb.EXPECT().ListTools(gomock.Any()).Return(testTools, nil).Times(1)
	llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolParam) (openai.ChatCompletionMessage, error) {
			require.Len(t, msgs, 2)
			assert.NotNil(t, msgs[0].OfSystem)
			assert.NotNil(t, msgs[1].OfUser)
			require.Len(t, tools, 1)
			assert.Equal(t, "generate_org_chart", tools[0].Function.Name)
			return text("hello"), nil
		})

	got, err := a.Ask(t.Context(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, 2, a.Len())
}

func TestAgent_Ask_history(t *testing.T) {
	a, llm, tb := newTestAgent(t)
	tb.EXPECT().ListTools(gomock.Any()).Return(testTools, nil).Times(1)
	gomock.InOrder(
		llm.EXPECT().Complete(gomock.Any(), gomock.Len(1), gomock.Any()).Return(text("one"), nil),
		llm.EXPECT().Complete(gomock.Any(), gomock.Len(3), gomock.Any()).Return(text("two"), nil),
	)

	got, err := a.Ask(t.Context(), "first")
	require.NoError(t, err)
	assert.Equal(t, "one", got)
	got, err = a.Ask(t.Context(), "second")
	require.NoError(t, err)
	assert.Equal(t, "two", got)
	assert.Equal(t, 4, a.Len())
}

func TestAgent_Ask_toolLoop(t *testing.T) {
	a, llm, tb := newTestAgent(t)
	tb.EXPECT().ListTools(gomock.Any()).Return(testTools, nil)
	gomock.InOrder(
		llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(toolCall("call_1", "generate_org_chart", `{"file_reference":"staff"}`), nil),
		tb.EXPECT().CallTool(gomock.Any(), "generate_org_chart", map[string]any{"file_reference": "staff"}).
			Return(mcplib.NewToolResultText("Chart created: /data/staff_org_chart.html"), nil),
		llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msgs []openai.ChatCompletionMessageParamUnion, _ []openai.ChatCompletionToolParam) (openai.ChatCompletionMessage, error) {
				id, content := lastToolMessage(t, msgs)
				assert.Equal(t, "call_1", id)
				assert.Equal(t, "Chart created: /data/staff_org_chart.html", content)
				return text("Your chart is at /data/staff_org_chart.html"), nil
			}),
	)

	got, err := a.Ask(t.Context(), "org chart for staff please")
	require.NoError(t, err)
	assert.Equal(t, "Your chart is at /data/staff_org_chart.html", got)
	assert.Equal(t, 4, a.Len(), "user, tool call, tool result, answer")
}

func TestAgent_Ask_toolErrors(t *testing.T) {
	tests := []struct {
		name  string
		call  openai.ChatCompletionMessage
		setup func(tb *mock_agent.MockToolbox)
		want  string
	}{
		{
			name: "error result is relayed",
			call: toolCall("c1", "generate_org_chart", `{"file_reference":"budget"}`),
			setup: func(tb *mock_agent.MockToolbox) {
				tb.EXPECT().CallTool(gomock.Any(), "generate_org_chart", gomock.Any()).Return(&mcplib.CallToolResult{
					Content: []mcplib.Content{mcplib.NewTextContent("no matching file found")},
					IsError: true,
				}, nil)
			},
			want: "Error: no matching file found",
		},
		{
			name: "transport failure is relayed",
			call: toolCall("c1", "generate_org_chart", `{"file_reference":"staff"}`),
			setup: func(tb *mock_agent.MockToolbox) {
				tb.EXPECT().CallTool(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			want: "Error: generate_org_chart failed: connection refused",
		},
		{
			name:  "invalid arguments are not sent",
			call:  toolCall("c1", "generate_org_chart", `{"file_reference":`),
			setup: func(tb *mock_agent.MockToolbox) {},
			want:  "Error: invalid arguments for generate_org_chart",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, llm, tb := newTestAgent(t)
			tb.EXPECT().ListTools(gomock.Any()).Return(testTools, nil)
			tt.setup(tb)
			gomock.InOrder(
				llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.call, nil),
				llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, msgs []openai.ChatCompletionMessageParamUnion, _ []openai.ChatCompletionToolParam) (openai.ChatCompletionMessage, error) {
						_, content := lastToolMessage(t, msgs)
						assert.True(t, strings.HasPrefix(content, tt.want), content)
						return text("sorry"), nil
					}),
			)
			got, err := a.Ask(t.Context(), "chart")
			require.NoError(t, err)
			assert.Equal(t, "sorry", got)
		})
	}
}

func TestAgent_Ask_upstreamErrorRollsBack(t *testing.T) {
	a, llm, tb := newTestAgent(t)
	tb.EXPECT().ListTools(gomock.Any()).Return(testTools, nil)
	gomock.InOrder(
		llm.EXPECT().Complete(gomock.Any(), gomock.Len(1), gomock.Any()).Return(openai.ChatCompletionMessage{}, errors.New("503 service unavailable")),
		llm.EXPECT().Complete(gomock.Any(), gomock.Len(1), gomock.Any()).Return(text("back"), nil),
	)

	_, err := a.Ask(t.Context(), "hello")
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, 0, a.Len())

	got, err := a.Ask(t.Context(), "hello again")
	require.NoError(t, err)
	assert.Equal(t, "back", got)
}

func TestAgent_Ask_maxRounds(t *testing.T) {
	a, llm, tb := newTestAgent(t, WithMaxRounds(2))
	tb.EXPECT().ListTools(gomock.Any()).Return(testTools, nil)
	llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(toolCall("c", "generate_org_chart", `{}`), nil).Times(3)
	tb.EXPECT().CallTool(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(mcplib.NewToolResultText("again"), nil).Times(2)

	_, err := a.Ask(t.Context(), "loop forever")
	require.ErrorIs(t, err, ErrTooManyRounds)
	assert.Equal(t, 0, a.Len())
}

func TestAgent_Ask_listToolsError(t *testing.T) {
	a, _, tb := newTestAgent(t)
	tb.EXPECT().ListTools(gomock.Any()).Return(nil, errors.New("session expired"))

	_, err := a.Ask(t.Context(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
}

func TestAgent_Run(t *testing.T) {
	t.Run("exit sends nothing", func(t *testing.T) {
		a, _, _ := newTestAgent(t)
		var out bytes.Buffer
		err := a.Run(t.Context(), strings.NewReader("EXIT\nshould not be read\n"), &out)
		require.NoError(t, err)
		assert.Equal(t, prompt, out.String())
	})
	t.Run("eof", func(t *testing.T) {
		a, _, _ := newTestAgent(t)
		var out bytes.Buffer
		require.NoError(t, a.Run(t.Context(), strings.NewReader(""), &out))
	})
	t.Run("blank lines are skipped", func(t *testing.T) {
		a, _, _ := newTestAgent(t)
		var out bytes.Buffer
		require.NoError(t, a.Run(t.Context(), strings.NewReader("\n   \nexit\n"), &out))
		assert.Equal(t, strings.Repeat(prompt, 3), out.String())
	})
	t.Run("failed turn continues", func(t *testing.T) {
		a, llm, tb := newTestAgent(t)
		tb.EXPECT().ListTools(gomock.Any()).Return(testTools, nil)
		gomock.InOrder(
			llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(openai.ChatCompletionMessage{}, errors.New("timeout")),
			llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(text("Chart ready."), nil),
		)
		var out bytes.Buffer
		err := a.Run(t.Context(), strings.NewReader("chart staff\nchart staff\nexit\n"), &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Error: "+ErrUpstream.Error()+": timeout")
		assert.Contains(t, out.String(), "Chart ready.")
	})
	t.Run("cancelled", func(t *testing.T) {
		a, _, _ := newTestAgent(t)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := a.Run(ctx, strings.NewReader("hello\n"), &bytes.Buffer{})
		assert.ErrorIs(t, err, context.Canceled)
	})
	t.Run("cancelled while waiting for input", func(t *testing.T) {
		a, _, _ := newTestAgent(t)
		pr, pw := io.Pipe()
		t.Cleanup(func() { pw.Close() })
		ctx, cancel := context.WithCancel(t.Context())

		errC := make(chan error, 1)
		go func() { errC <- a.Run(ctx, pr, io.Discard) }()
		// the loop is blocked reading the pipe.
		select {
		case err := <-errC:
			t.Fatalf("Run returned early: %v", err)
		case <-time.After(50 * time.Millisecond):
		}
		cancel()
		select {
		case err := <-errC:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})
	t.Run("read error", func(t *testing.T) {
		a, _, _ := newTestAgent(t)
		pr, pw := io.Pipe()
		pw.CloseWithError(errors.New("terminal gone"))
		err := a.Run(t.Context(), pr, io.Discard)
		assert.EqualError(t, err, "terminal gone")
	})
}

func TestToolParam(t *testing.T) {
	p, err := toolParam(testTools[0])
	require.NoError(t, err)
	assert.Equal(t, "generate_org_chart", p.Function.Name)
	assert.Equal(t, "Generate an org chart.", p.Function.Description.Value)
	assert.Equal(t, "object", p.Function.Parameters["type"])
	props, ok := p.Function.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "file_reference")
	assert.Equal(t, []any{"file_reference"}, p.Function.Parameters["required"])
}

func TestResultText(t *testing.T) {
	res := &mcplib.CallToolResult{Content: []mcplib.Content{
		mcplib.NewTextContent("a"),
		mcplib.NewImageContent("xx", "image/png"),
		mcplib.NewTextContent("b"),
	}}
	assert.Equal(t, "a\nb", resultText(res))
}

func TestAgent_ID(t *testing.T) {
	var logs bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a, llm, tb := newTestAgent(t, WithLogger(lg))
	b, _, _ := newTestAgent(t)

	_, err := uuid.Parse(a.ID())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	tb.EXPECT().ListTools(gomock.Any()).Return(testTools, nil)
	llm.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(text("hello"), nil)
	_, err = a.Ask(t.Context(), "hi")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "conversation="+a.ID())
}
