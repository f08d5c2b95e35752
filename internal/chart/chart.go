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

// Package chart renders an org hierarchy as a standalone interactive HTML
// page.  The page embeds a declarative chart definition (nodes and edges) as
// a JSON data island and draws it with the vis-network library.
package chart

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/rbacmatcher/orgchart/internal/fsadapter"
	"github.com/rbacmatcher/orgchart/internal/orgdata"
)

// ErrRender is returned when the chart cannot be produced or written.
var ErrRender = errors.New("failed to render chart")

const (
	// DefSuffix is appended to the source file stem to name the chart.
	DefSuffix = "_org_chart"
	// DefLibraryURL is the vis-network build referenced by the page.
	DefLibraryURL = "https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"
)

//go:embed templates
var fsys embed.FS

var tmpl = template.Must(template.New("").ParseFS(fsys, "templates/*.html"))

// Artifact describes a written chart.
type Artifact struct {
	Path  string
	Nodes int
	Edges int
	Bytes int64
}

// Renderer renders charts to HTML files.
type Renderer struct {
	outputDir  string
	suffix     string
	libraryURL string
	now        func() time.Time
	lg         *slog.Logger
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithOutputDir writes charts into dir instead of next to the source file.
func WithOutputDir(dir string) Option {
	return func(r *Renderer) {
		r.outputDir = dir
	}
}

// WithSuffix sets the suffix appended to the source file stem.
func WithSuffix(s string) Option {
	return func(r *Renderer) {
		if s != "" {
			r.suffix = s
		}
	}
}

// WithLibraryURL sets the URL of the vis-network script.
func WithLibraryURL(u string) Option {
	return func(r *Renderer) {
		if u != "" {
			r.libraryURL = u
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(r *Renderer) {
		if lg != nil {
			r.lg = lg
		}
	}
}

// New creates a new Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		suffix:     DefSuffix,
		libraryURL: DefLibraryURL,
		now:        time.Now,
		lg:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OutputPath returns the path of the chart for the source spreadsheet.
func (r *Renderer) OutputPath(source string) string {
	dir := r.outputDir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	base := filepath.Base(source)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+r.suffix+".html")
}

// page is the template data.
type page struct {
	Title      string
	Source     string
	Generated  string
	LibraryURL string
	Definition Definition
}

// Render writes the chart of h for the source spreadsheet and returns the
// artifact.  An existing chart at the same path is replaced.
func (r *Renderer) Render(ctx context.Context, h *orgdata.Hierarchy, source string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def := NewDefinition(h)
	srcName := filepath.Base(source)
	p := page{
		Title:      "Org chart: " + strings.TrimSuffix(srcName, filepath.Ext(srcName)),
		Source:     srcName,
		Generated:  r.now().Format(time.DateTime),
		LibraryURL: r.libraryURL,
		Definition: def,
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "orgchart.html", p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	out := r.OutputPath(source)
	if err := write(fsadapter.NewFilesystem(filepath.Dir(out)), filepath.Base(out), buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, out, err)
	}
	a := &Artifact{
		Path:  out,
		Nodes: len(def.Nodes),
		Edges: len(def.Edges),
		Bytes: int64(buf.Len()),
	}
	r.lg.InfoContext(ctx, "chart written", "path", a.Path, "nodes", a.Nodes, "edges", a.Edges)
	return a, nil
}

func write(fs fsadapter.FileCreator, name string, data []byte) error {
	w, err := fs.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
