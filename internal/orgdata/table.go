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

// In this file: reading spreadsheets into a Table.

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is the raw content of a spreadsheet: a header row and data rows.
// Rows may be shorter than the header.  All values are whitespace-trimmed.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadFile reads the table from the spreadsheet at path.  The format is
// chosen by extension: ".xlsx", ".xlsm", ".xltx" and ".xltm" are read with
// excelize, ".csv" with the CSV reader.  For workbooks, sheet selects the
// worksheet; an empty sheet means the first one.
func ReadFile(ctx context.Context, path string, sheet string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		rows, err = readWorkbook(path, sheet)
	case ".csv":
		rows, err = readCSVFile(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		return nil, err
	}
	return newTable(rows)
}

func readWorkbook(path string, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrMalformed, sheet, err)
	}
	return rows, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return rows, nil
}

// newTable trims the values and takes the first non-empty row as the header.
func newTable(rows [][]string) (*Table, error) {
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMalformed)
	}
	t := &Table{
		Header: trimAll(rows[0]),
		Rows:   make([][]string, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, trimAll(row))
	}
	return t, nil
}

// Column returns the index of the first header matching any of the names,
// tried in order, ignoring case and surrounding whitespace.  It returns -1 if
// none match.
func (t *Table) Column(names ...string) int {
	for _, name := range names {
		want := normalise(name)
		if i := slices.IndexFunc(t.Header, func(h string) bool { return normalise(h) == want }); i >= 0 {
			return i
		}
	}
	return -1
}

// Cell returns the value of the column col in the row, or an empty string
// if the row is too short or col is negative.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Columns returns the non-empty header names.
func (t *Table) Columns() []string {
	cols := make([]string, 0, len(t.Header))
	for _, h := range t.Header {
		if h != "" {
			cols = append(cols, h)
		}
	}
	return cols
}

func normalise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func isBlank(row []string) bool {
	return !slices.ContainsFunc(row, func(s string) bool { return strings.TrimSpace(s) != "" })
}
