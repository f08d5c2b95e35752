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

package chart

// In this file: the declarative chart definition.

import (
	"strings"

	"github.com/rbacmatcher/orgchart/internal/orgdata"
)

const (
	groupManager  = "manager"
	groupEmployee = "employee"
	edgeLabel     = "reports_to"
)

// Definition is the vis-network data set and options of a chart.
type Definition struct {
	Nodes   []Node         `json:"nodes"`
	Edges   []Edge         `json:"edges"`
	Options map[string]any `json:"options"`
}

// Node is an employee.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title,omitempty"`
	Group string `json:"group"`
}

// Edge points from the manager to the report.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// NewDefinition builds the chart definition of the hierarchy.
func NewDefinition(h *orgdata.Hierarchy) Definition {
	def := Definition{
		Nodes:   make([]Node, 0, h.Len()),
		Edges:   []Edge{},
		Options: defaultOptions(),
	}
	for _, e := range h.Employees() {
		group := groupEmployee
		if len(h.Reports(e.Name)) > 0 {
			group = groupManager
		}
		def.Nodes = append(def.Nodes, Node{
			ID:    e.Name,
			Label: label(e),
			Title: tooltip(e),
			Group: group,
		})
	}
	for _, edge := range h.Edges() {
		def.Edges = append(def.Edges, Edge{From: edge.Manager, To: edge.Report, Label: edgeLabel})
	}
	return def
}

// label is the display name, the job title and the cost center, one per
// line, whichever are present.
func label(e *orgdata.Employee) string {
	lines := []string{displayName(e)}
	if v := attr(e, "job title", "title"); v != "" {
		lines = append(lines, v)
	}
	if v := attr(e, "cost center name", "cost center"); v != "" {
		lines = append(lines, "Cost Center: "+v)
	}
	return strings.Join(lines, "\n")
}

func displayName(e *orgdata.Employee) string {
	first := attr(e, "legal first name", "first name")
	last := attr(e, "legal last name", "last name")
	if full := strings.TrimSpace(first + " " + last); full != "" {
		return full
	}
	return e.Name
}

func tooltip(e *orgdata.Employee) string {
	var buf strings.Builder
	for i, f := range e.Attrs {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(f.Key)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
	}
	return buf.String()
}

func attr(e *orgdata.Employee, keys ...string) string {
	for _, k := range keys {
		if v, ok := e.Attr(k); ok && v != "" {
			return v
		}
	}
	return ""
}

func defaultOptions() map[string]any {
	return map[string]any{
		"layout": map[string]any{
			"hierarchical": map[string]any{
				"enabled":         true,
				"direction":       "UD",
				"sortMethod":      "directed",
				"levelSeparation": 250,
				"nodeSpacing":     300,
			},
		},
		"physics": map[string]any{"enabled": false},
		"nodes": map[string]any{
			"shape": "box",
			"font":  map[string]any{"size": 18, "color": "black"},
		},
		"edges": map[string]any{"arrows": "to"},
		"groups": map[string]any{
			groupManager:  map[string]any{"color": "lightgreen"},
			groupEmployee: map[string]any{"color": "lightblue"},
		},
		"interaction": map[string]any{"hover": true, "navigationButtons": true},
	}
}
