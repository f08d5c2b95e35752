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

package orgchart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbacmatcher/orgchart/internal/chart"
	"github.com/rbacmatcher/orgchart/internal/orgdata"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

const staffCSV = `Associate ID,Reports To Manager ID,Cost Center Name
Alice,,Board
Bob,Alice,Engineering
Carol,Alice,Sales
`

func newTestService(t *testing.T, files map[string]string) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return New(resolve.New([]string{dir}), chart.New()), dir
}

func TestService_Generate(t *testing.T) {
	s, dir := newTestService(t, map[string]string{"staff.csv": staffCSV})

	res, err := s.Generate(t.Context(), Request{Hint: "stafff"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "staff.csv"), res.Source.Path)
	assert.Equal(t, filepath.Join(dir, "staff_org_chart.html"), res.Chart.Path)
	assert.Equal(t, 3, res.Chart.Nodes)
	assert.Equal(t, 2, res.Chart.Edges)
	assert.Equal(t, []string{"Alice"}, res.Roots)
	assert.FileExists(t, res.Chart.Path)

	// same input, same artifact
	again, err := s.Generate(t.Context(), Request{Hint: "staff.csv"})
	require.NoError(t, err)
	assert.Equal(t, res.Chart.Path, again.Chart.Path)
}

func TestService_Generate_filter(t *testing.T) {
	s, _ := newTestService(t, map[string]string{"staff.csv": staffCSV})

	res, err := s.Generate(t.Context(), Request{Hint: "staff", Filter: "cost center name=sales"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Chart.Nodes)
	assert.Equal(t, []string{"Carol"}, res.Roots)
}

func TestService_Generate_malformedSkipsRender(t *testing.T) {
	s, dir := newTestService(t, map[string]string{"staff.csv": "Person,Boss\nAlice,\n"})

	_, err := s.Generate(t.Context(), Request{Hint: "staff"})
	require.ErrorIs(t, err, orgdata.ErrMalformed)
	assert.NoFileExists(t, filepath.Join(dir, "staff_org_chart.html"))
}

func TestService_Generate_notFound(t *testing.T) {
	s, _ := newTestService(t, map[string]string{"staff.csv": staffCSV})

	_, err := s.Generate(t.Context(), Request{Hint: "budget forecast"})
	require.ErrorIs(t, err, resolve.ErrNotFound)
	assert.Contains(t, err.Error(), "staff.csv")
}

func TestService_CostCenters(t *testing.T) {
	s, _ := newTestService(t, map[string]string{"staff.csv": staffCSV, "other.csv": "name\nx\n"})

	m, cc, err := s.CostCenters(t.Context(), "staff")
	require.NoError(t, err)
	assert.Equal(t, "staff.csv", m.Name)
	assert.Equal(t, []string{"Board", "Engineering", "Sales"}, cc)

	_, _, err = s.CostCenters(t.Context(), "other")
	assert.ErrorIs(t, err, orgdata.ErrUnknownColumn)
}

func TestService_Files(t *testing.T) {
	s, dir := newTestService(t, map[string]string{"staff.csv": staffCSV, "notes.md": "x"})

	ff, err := s.Files(t.Context())
	require.NoError(t, err)
	require.Len(t, ff, 1)
	assert.Equal(t, "staff.csv", ff[0].Name)
	assert.Equal(t, []string{dir}, s.Dirs())
}
