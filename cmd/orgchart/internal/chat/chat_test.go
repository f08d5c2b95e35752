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
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/base"
	"github.com/rbacmatcher/orgchart/internal/agent"
	"github.com/rbacmatcher/orgchart/internal/agent/mock_agent"
	"github.com/rbacmatcher/orgchart/internal/chart"
	"github.com/rbacmatcher/orgchart/internal/mcp"
	"github.com/rbacmatcher/orgchart/internal/orgchart"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

func Test_parsePort(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3000", 3000, false},
		{" 8000 ", 8000, false},
		{"65535", 65535, false},
		{"0", 0, true},
		{"65536", 0, true},
		{"-1", 0, true},
		{"http", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePort(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidPort)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_serverURL(t *testing.T) {
	notInteractive(t)
	tests := []struct {
		name    string
		params  chatParams
		input   string
		want    string
		wantErr error
	}{
		{"server flag", chatParams{server: "http://mcp.local/mcp", port: 1}, "", "http://mcp.local/mcp", nil},
		{"port flag", chatParams{port: 3000}, "", "http://localhost:3000/mcp", nil},
		{"prompted", chatParams{}, "8000\n", "http://localhost:8000/mcp", nil},
		{"prompted garbage", chatParams{}, "three thousand\n", "", errInvalidPort},
		{"out of range", chatParams{port: 70000}, "", "", errInvalidPort},
		{"prompted zero", chatParams{}, "0\n", "", errInvalidPort},
		{"no input", chatParams{}, "", "", base.ErrOpCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := serverURL(io.Discard, strings.NewReader(tt.input), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func notInteractive(t *testing.T) {
	t.Helper()
	old := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = old })
}

// setStreams replaces the terminal streams for the duration of the test.
func setStreams(t *testing.T, input string) *bytes.Buffer {
	t.Helper()
	notInteractive(t)
	var out bytes.Buffer
	oldIn, oldOut, oldParams, oldLLM := stdin, stdout, params, cfg.LLM
	stdin, stdout = strings.NewReader(input), &out
	t.Cleanup(func() {
		stdin, stdout, params, cfg.LLM = oldIn, oldOut, oldParams, oldLLM
	})
	return &out
}

func TestRunChat_invalidPort(t *testing.T) {
	setStreams(t, "not-a-port\n")
	params = chatParams{}
	err := runChat(t.Context(), CmdChat, nil)
	assert.ErrorIs(t, err, errInvalidPort)
	assert.EqualError(t, err, "Invalid port number.")
}

func TestRunChat_noAPIKey(t *testing.T) {
	setStreams(t, "")
	params = chatParams{port: 3000}
	cfg.LLM = agent.Config{Model: "gpt-4o"}
	err := runChat(t.Context(), CmdChat, nil)
	assert.ErrorIs(t, err, agent.ErrConfig)
	assert.ErrorContains(t, err, "API key is a required field")
}

const replyJSON = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-test",
  "choices": [{"index": 0, "finish_reason": "stop",
    "message": {"role": "assistant", "content": "Hello from the org chart assistant."}}]
}`

func TestRunChat(t *testing.T) {
	// MCP server over streamable HTTP
	svc := orgchart.New(resolve.New([]string{t.TempDir()}), chart.New())
	mcpSrv := httptest.NewServer(server.NewStreamableHTTPServer(mcp.New(svc).MCPServer()))
	t.Cleanup(mcpSrv.Close)

	// model
	var hits atomic.Int32
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(replyJSON))
	}))
	t.Cleanup(llmSrv.Close)

	out := setStreams(t, "hi\nexit\n")
	params = chatParams{server: mcpSrv.URL + "/mcp", persona: "", maxRounds: 8}
	cfg.LLM.APIKey = "sk-test"
	cfg.LLM.BaseURL = llmSrv.URL + "/"
	cfg.LLM.Model = "gpt-test"

	err := runChat(t.Context(), CmdChat, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Connected to "+mcpSrv.URL+"/mcp")
	assert.Contains(t, out.String(), "Hello from the org chart assistant.")
	assert.EqualValues(t, 1, hits.Load())
}

func TestThinking_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	llm := mock_agent.NewMockLLM(ctrl)
	want := openai.ChatCompletionMessage{Content: "done"}
	llm.EXPECT().Complete(gomock.Any(), gomock.Len(1), gomock.Nil()).Return(want, nil)

	var buf bytes.Buffer
	got, err := thinking{LLM: llm, w: &buf}.Complete(t.Context(), []openai.ChatCompletionMessageParamUnion{openai.UserMessage("hi")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "done", got.Content)
	assert.Contains(t, buf.String(), "thinking...")
}
