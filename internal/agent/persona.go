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
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"
)

// DefPersonaFile is the persona file looked up by the chat client.
const DefPersonaFile = "personas/default"

// DefaultPersona is used when there is no persona file.
const DefaultPersona = `You are an assistant that creates organisation charts from HR spreadsheets.

When the user asks for an org chart, call generate_org_chart with the file
name they mention, even if it looks misspelled, and tell them where the chart
was saved.  Use list_spreadsheets when they don't know the file name, and
list_cost_centers when they want a chart of a single cost center.

If a tool reports that the file could not be found or is ambiguous, show the
suggested names and ask which one they meant.  Never invent file names or
chart paths.`

// LoadPersona reads the persona from path and appends today's date.  If the
// file does not exist, [DefaultPersona] is used.
func LoadPersona(path string, now time.Time) (string, error) {
	persona := DefaultPersona
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			persona = strings.TrimSpace(string(data))
		case errors.Is(err, fs.ErrNotExist):
			// built-in
		default:
			return "", err
		}
	}
	return persona + "\n\nToday's date is: " + now.Format(time.ANSIC), nil
}
