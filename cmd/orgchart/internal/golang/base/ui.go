package base

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrOpCancelled = errors.New("operation cancelled")

// InputWR prints the prompt to w and reads a single line from r.  It
// returns ErrOpCancelled if r is exhausted before a line is entered.  If r is
// a *bufio.Reader, the input after the line stays in its buffer.
func InputWR(w io.Writer, r io.Reader, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", ErrOpCancelled
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
