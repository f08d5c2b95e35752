// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
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

package mcp

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rbacmatcher/orgchart/internal/orgchart"
	"github.com/rbacmatcher/orgchart/internal/orgdata"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

const (
	argFileReference = "file_reference"
	argFilter        = "filter"
)

// errNoReference is returned by tool handlers when the file reference is missing.
var errNoReference = errors.New("file_reference is required")

// ─── generate_org_chart ───────────────────────────────────────────────────────

func (s *Server) toolGenerateOrgChart() mcpsrv.ServerTool {
	tool := mcplib.NewTool("generate_org_chart",
		mcplib.WithDescription(`Generate an interactive HTML org chart from a spreadsheet.

The spreadsheet is located by name in the data directories, the name does not
need to be exact: misspellings and partial names are matched to the closest
file.  The chart is written as <name>_org_chart.html next to the spreadsheet
or in the configured output directory, overwriting any previous chart of the
same file.

The spreadsheet must have an employee column ("Associate ID" or similar) and
may have a manager column ("Reports To Manager ID" or similar).`),
		mcplib.WithString(argFileReference,
			mcplib.Description("Name of the spreadsheet, i.e. \"staff\" or \"staff.xlsx\"."),
			mcplib.Required(),
		),
		mcplib.WithString(argFilter,
			mcplib.Description("Optional row filter as comma-separated column=value pairs, i.e. \"Cost Center Name=Sales\". Matching is case-insensitive."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGenerateOrgChart}
}

func (s *Server) handleGenerateOrgChart(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	ref, ok := stringArg(req, argFileReference)
	if !ok || strings.TrimSpace(ref) == "" {
		return resultErr(fmt.Errorf("generate_org_chart: %w", errNoReference)), nil
	}
	filter, _ := stringArg(req, argFilter)

	s.logger.InfoContext(ctx, "mcp: generate_org_chart", "file_reference", ref, "filter", filter)

	res, err := s.svc.Generate(ctx, orgchart.Request{Hint: ref, Filter: filter})
	if err != nil {
		s.logger.WarnContext(ctx, "mcp: generate_org_chart failed", "file_reference", ref, "error", err)
		return resultErr(explain("generate_org_chart", err)), nil
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Chart created: %s (%d people, %d reporting lines, %s)\n",
		res.Chart.Path, res.Chart.Nodes, res.Chart.Edges, humanize.Bytes(uint64(res.Chart.Bytes)))
	fmt.Fprintf(&buf, "Source: %s", res.Source.Path)
	if !res.Source.Exact {
		fmt.Fprintf(&buf, " (matched %q, %.0f%%)", ref, res.Source.Score*100)
	}
	buf.WriteByte('\n')
	if len(res.Roots) > 0 {
		fmt.Fprintf(&buf, "Top of the hierarchy: %s\n", strings.Join(res.Roots, ", "))
	}
	if res.Skipped > 0 {
		fmt.Fprintf(&buf, "Rows without an employee name skipped: %d\n", res.Skipped)
	}
	return resultText(buf.String()), nil
}

// ─── list_cost_centers ────────────────────────────────────────────────────────

func (s *Server) toolListCostCenters() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_cost_centers",
		mcplib.WithDescription(`List the distinct cost centers of a spreadsheet.

Use the result to build a filter for generate_org_chart, i.e.
"Cost Center Name=<value>".`),
		mcplib.WithString(argFileReference,
			mcplib.Description("Name of the spreadsheet, i.e. \"staff\" or \"staff.xlsx\"."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListCostCenters}
}

func (s *Server) handleListCostCenters(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	ref, ok := stringArg(req, argFileReference)
	if !ok || strings.TrimSpace(ref) == "" {
		return resultErr(fmt.Errorf("list_cost_centers: %w", errNoReference)), nil
	}

	m, cc, err := s.svc.CostCenters(ctx, ref)
	if err != nil {
		if errors.Is(err, orgdata.ErrUnknownColumn) {
			return resultText(fmt.Sprintf("%s has no cost center column.", m.Name)), nil
		}
		return resultErr(explain("list_cost_centers", err)), nil
	}
	if len(cc) == 0 {
		return resultText("No cost centers found in this file."), nil
	}
	return resultText("Available Cost Centers:\n- " + strings.Join(cc, "\n- ")), nil
}

// ─── list_spreadsheets ────────────────────────────────────────────────────────

// fileInfo is a spreadsheet entry of list_spreadsheets.
type fileInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) toolListSpreadsheets() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_spreadsheets",
		mcplib.WithDescription(`List the spreadsheets available for org charts.

Returns a JSON array of {name, path} objects in search order.`),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListSpreadsheets}
}

func (s *Server) handleListSpreadsheets(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	ff, err := s.svc.Files(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_spreadsheets: %w", err)), nil
	}
	if len(ff) == 0 {
		return resultText(fmt.Sprintf("No spreadsheets found in %s.", strings.Join(s.svc.Dirs(), ", "))), nil
	}
	out := make([]fileInfo, 0, len(ff))
	for _, f := range ff {
		out = append(out, fileInfo{Name: f.Name, Path: f.Path})
	}
	return resultJSON(out)
}

// explain adds guidance for the agent to the error where the user has to
// make a choice.
func explain(tool string, err error) error {
	var (
		nf *resolve.NotFoundError
		am *resolve.AmbiguousError
	)
	switch {
	case errors.As(err, &nf):
		if len(nf.Misses) == 0 {
			return fmt.Errorf("%s: %w", tool, err)
		}
		return fmt.Errorf("%s: %w. Ask the user which file they meant and call the tool again with its exact name", tool, err)
	case errors.As(err, &am):
		return fmt.Errorf("%s: %w. Ask the user to choose one of these files", tool, err)
	case errors.Is(err, orgdata.ErrUnknownColumn):
		return fmt.Errorf("%s: %w. Check the filter column names", tool, err)
	case errors.Is(err, orgdata.ErrMalformed):
		return fmt.Errorf("%s: the spreadsheet is not a valid org listing: %w", tool, err)
	default:
		return fmt.Errorf("%s: %w", tool, err)
	}
}
