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

package resolve

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no candidate clears the threshold.
	ErrNotFound = errors.New("no matching file found")
	// ErrAmbiguous is returned when several candidates match equally well.
	ErrAmbiguous = errors.New("ambiguous file reference")
	// ErrEmptyHint is returned when the filename hint is blank.
	ErrEmptyHint = errors.New("no file reference provided")
)

// NotFoundError is returned by [Resolver.Resolve] when no candidate is close
// enough.  Misses holds the closest candidates, best first, so that the
// caller can ask the user to pick one.
type NotFoundError struct {
	Hint   string
	Dirs   []string
	Misses []Match
}

func (e *NotFoundError) Error() string {
	if len(e.Misses) == 0 {
		return fmt.Sprintf("%s for %q: no spreadsheets in %s", ErrNotFound, e.Hint, strings.Join(e.Dirs, ", "))
	}
	return fmt.Sprintf("%s for %q, closest: %s", ErrNotFound, e.Hint, names(e.Misses))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AmbiguousError is returned by [Resolver.Resolve] when the best candidates
// have the same score and cannot be separated by extension preference or
// directory order.
type AmbiguousError struct {
	Hint    string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s %q, could be any of: %s", ErrAmbiguous, e.Hint, names(e.Matches))
}

func (e *AmbiguousError) Unwrap() error {
	return ErrAmbiguous
}

func names(ms []Match) string {
	var buf strings.Builder
	for i, m := range ms {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%q (%.0f%%)", m.Name, m.Score*100)
	}
	return buf.String()
}
