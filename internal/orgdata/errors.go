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

package orgdata

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed is returned when the spreadsheet cannot be interpreted as
	// org data, i.e. it is unreadable or lacks the employee column.
	ErrMalformed = errors.New("malformed spreadsheet")
	// ErrUnknownColumn is returned when a filter or a lookup names a column
	// that is not in the spreadsheet.
	ErrUnknownColumn = errors.New("column not found")
	// ErrCycle is returned when the reporting lines loop.
	ErrCycle = errors.New("circular reporting line")
	// ErrUnsupported is returned for files that are not spreadsheets.
	ErrUnsupported = errors.New("unsupported file type")
)

// ColumnError describes a required column missing from the spreadsheet.
type ColumnError struct {
	// Want lists the accepted names of the missing column.
	Want []string
	// Available lists the columns that are present.
	Available []string
	// Err is ErrMalformed or ErrUnknownColumn.
	Err error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %s; available columns: %s", e.Err, quoteJoin(e.Want, " or "), quoteJoin(e.Available, ", "))
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// CycleError is returned when an employee is, directly or indirectly, their
// own manager.  Chain starts and ends with the same name.  It matches both
// ErrCycle and ErrMalformed.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() []error {
	return []error{ErrCycle, ErrMalformed}
}

func quoteJoin(ss []string, sep string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, sep)
}
