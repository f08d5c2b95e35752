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

// Package orgchart ties file resolution, org data extraction and chart
// rendering together.
package orgchart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rbacmatcher/orgchart/internal/chart"
	"github.com/rbacmatcher/orgchart/internal/orgdata"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

// Service generates org charts from spreadsheets.
type Service struct {
	resolver *resolve.Resolver
	renderer *chart.Renderer
	extract  orgdata.Options
	lg       *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithExtractOptions sets the column mapping and worksheet used for every
// request.  The Filter field is ignored, filters come with the request.
func WithExtractOptions(opts orgdata.Options) Option {
	return func(s *Service) {
		opts.Filter = ""
		s.extract = opts
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.lg = lg
		}
	}
}

// New creates a Service.
func New(r *resolve.Resolver, cr *chart.Renderer, opts ...Option) *Service {
	s := &Service{
		resolver: r,
		renderer: cr,
		lg:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request is a chart generation request.
type Request struct {
	// Hint is the (possibly misspelled) name of the spreadsheet.
	Hint string
	// Filter optionally restricts the rows, i.e. "cost center name=Sales".
	Filter string
}

// Result is the outcome of a successful request.
type Result struct {
	// Source is the resolved spreadsheet.
	Source resolve.Match
	// Chart is the written chart.
	Chart *chart.Artifact
	// Roots are the top-level employees.
	Roots []string
	// Skipped is the number of rows without an employee name.
	Skipped int
}

// Generate resolves the spreadsheet, extracts the hierarchy and renders the
// chart.  The chart is not rendered if the extraction fails.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	lg := s.lg.With("hint", req.Hint)
	m, err := s.resolver.Resolve(ctx, req.Hint)
	if err != nil {
		return nil, err
	}
	lg.InfoContext(ctx, "spreadsheet resolved", "path", m.Path, "score", m.Score)

	opts := s.extract
	opts.Filter = req.Filter
	h, err := orgdata.Load(ctx, m.Path, opts)
	if err != nil {
		lg.WarnContext(ctx, "extraction failed", "path", m.Path, "error", err)
		return nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	lg.DebugContext(ctx, "hierarchy built", "employees", h.Len(), "roots", len(h.Roots()), "skipped", h.Skipped, "duplicates", h.Duplicates)

	a, err := s.renderer.Render(ctx, h, m.Path)
	if err != nil {
		lg.ErrorContext(ctx, "render failed", "path", m.Path, "error", err)
		return nil, err
	}
	return &Result{
		Source:  m,
		Chart:   a,
		Roots:   h.Roots(),
		Skipped: h.Skipped,
	}, nil
}

// CostCenters returns the cost centers listed in the spreadsheet matching
// the hint.
func (s *Service) CostCenters(ctx context.Context, hint string) (resolve.Match, []string, error) {
	m, err := s.resolver.Resolve(ctx, hint)
	if err != nil {
		return resolve.Match{}, nil, err
	}
	t, err := orgdata.ReadFile(ctx, m.Path, s.extract.Sheet)
	if err != nil {
		return m, nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	cc, err := orgdata.CostCenters(t)
	if err != nil {
		return m, nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	return m, cc, nil
}

// Files returns the spreadsheets available in the search directories.
func (s *Service) Files(ctx context.Context) ([]resolve.Candidate, error) {
	return s.resolver.Candidates(ctx)
}

// Dirs returns the search directories.
func (s *Service) Dirs() []string {
	return s.resolver.Dirs()
}
