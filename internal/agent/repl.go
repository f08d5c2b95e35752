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

// In this file: the interactive loop.

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

const (
	prompt = "> "
	// ExitCommand ends the conversation.
	ExitCommand = "exit"
)

// Run reads user lines from r and writes the replies to w until the user
// types the exit command, r is exhausted or ctx is cancelled.  Failed turns
// are reported on w and the loop continues.
func (a *Agent) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	var (
		reply   = lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("12"))
		failure = color.New(color.FgRed)
	)
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(rctx, r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(w, prompt)
		var (
			text string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return ctx.Err()
		case text, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(w)
			return <-readErr
		}
		line := strings.TrimSpace(text)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, ExitCommand) {
			return nil
		}
		answer, err := a.Ask(ctx, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			a.lg.WarnContext(ctx, "turn failed", "error", err)
			failure.Fprintf(w, "Error: %s\n", err)
			continue
		}
		fmt.Fprintln(w, reply.Render(answer))
	}
}

// readLines scans r in a goroutine, so that a read blocked on the terminal
// does not hold up cancellation.  The lines channel is closed when r is
// exhausted, the scan error is then sent on the error channel.  After ctx
// is cancelled the goroutine exits once the pending Read returns.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errC := make(chan error, 1)
	go func() {
		defer close(errC)
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errC <- sc.Err()
	}()
	return lines, errC
}
