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

// Package resolve finds the spreadsheet a user most likely meant, given a
// free-text (and possibly misspelled) filename and a list of directories to
// look in.
package resolve

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rbacmatcher/orgchart/internal/osext"
)

// DefThreshold is the default minimum similarity a candidate must reach to
// be returned.
const DefThreshold = 0.6

// DefExtensions lists the supported spreadsheet extensions, most preferred
// first.
var DefExtensions = []string{".xlsx", ".xlsm", ".csv"}

// nearMisses is the number of closest candidates reported on failure.
const nearMisses = 3

// Candidate is a spreadsheet file found in one of the search directories.
type Candidate struct {
	// Name is the base name of the file.
	Name string
	// Dir is the search directory the file was found in.
	Dir string
	// Path is the full path to the file.
	Path string

	dirIdx int // position of Dir in the search order
	extIdx int // position of the extension in the preference order
}

// Match is a candidate with its similarity score against the hint.
type Match struct {
	Candidate
	Score float64
	Exact bool
}

// Resolver resolves filename hints to spreadsheet files.
type Resolver struct {
	dirs       []string
	extensions []string
	threshold  float64
	lg         *slog.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithExtensions sets the accepted extensions in the order of preference.
// Extensions are compared case-insensitively and must include the dot.
func WithExtensions(ext ...string) Option {
	return func(r *Resolver) {
		if len(ext) == 0 {
			return
		}
		r.extensions = make([]string, 0, len(ext))
		for _, e := range ext {
			r.extensions = append(r.extensions, strings.ToLower(e))
		}
	}
}

// WithThreshold sets the minimum similarity score, 0 < t <= 1.  Values out of
// range are ignored.
func WithThreshold(t float64) Option {
	return func(r *Resolver) {
		if t > 0 && t <= 1 {
			r.threshold = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(r *Resolver) {
		if lg != nil {
			r.lg = lg
		}
	}
}

// New creates a Resolver that searches dirs in the given order.  Empty and
// duplicate directories are dropped.
func New(dirs []string, opts ...Option) *Resolver {
	r := &Resolver{
		extensions: DefExtensions,
		threshold:  DefThreshold,
		lg:         slog.Default(),
	}
	for _, d := range dirs {
		if d == "" || slices.Contains(r.dirs, d) {
			continue
		}
		r.dirs = append(r.dirs, d)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dirs returns the search directories in search order.
func (r *Resolver) Dirs() []string {
	return slices.Clone(r.dirs)
}

// Candidates returns the spreadsheet files currently present in the search
// directories.  Directories that do not exist are skipped.  The result is
// ordered by directory search order, then by name.
func (r *Resolver) Candidates(ctx context.Context) ([]Candidate, error) {
	var cc []Candidate
	for i, dir := range r.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !osext.IsPathError(err) {
				return nil, err
			}
			r.lg.DebugContext(ctx, "skipping search directory", "dir", dir, "error", err)
			continue
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			idx := slices.Index(r.extensions, ext)
			if idx < 0 {
				continue
			}
			cc = append(cc, Candidate{
				Name:   e.Name(),
				Dir:    dir,
				Path:   filepath.Join(dir, e.Name()),
				dirIdx: i,
				extIdx: idx,
			})
		}
	}
	return cc, nil
}

// Resolve returns the candidate that best matches hint.  It returns a
// *NotFoundError if nothing clears the threshold, and an *AmbiguousError if
// the best candidates cannot be told apart.
func (r *Resolver) Resolve(ctx context.Context, hint string) (Match, error) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return Match{}, ErrEmptyHint
	}
	cc, err := r.Candidates(ctx)
	if err != nil {
		return Match{}, err
	}
	ranked := r.rank(hint, cc)
	lg := r.lg.With("hint", hint, "candidates", len(cc))

	if len(ranked) == 0 || ranked[0].Score < r.threshold {
		lg.InfoContext(ctx, "no file matched")
		return Match{}, &NotFoundError{
			Hint:   hint,
			Dirs:   r.Dirs(),
			Misses: head(ranked, nearMisses),
		}
	}
	best := ranked[0]
	if len(ranked) > 1 && !best.Exact && sameRank(best, ranked[1]) {
		tied := []Match{best}
		for _, m := range ranked[1:] {
			if !sameRank(best, m) {
				break
			}
			tied = append(tied, m)
		}
		lg.InfoContext(ctx, "ambiguous match", "tied", len(tied))
		return Match{}, &AmbiguousError{Hint: hint, Matches: tied}
	}
	lg.DebugContext(ctx, "resolved", "path", best.Path, "score", best.Score)
	return best, nil
}

// rank scores every candidate and sorts them best first: higher score,
// exact match, preferred extension, earlier directory, then name.
func (r *Resolver) rank(hint string, cc []Candidate) []Match {
	ms := make([]Match, 0, len(cc))
	for _, c := range cc {
		score, exact := similarity(hint, c.Name)
		ms = append(ms, Match{Candidate: c, Score: score, Exact: exact})
	}
	slices.SortStableFunc(ms, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		case a.Exact != b.Exact:
			if a.Exact {
				return -1
			}
			return 1
		case a.extIdx != b.extIdx:
			return a.extIdx - b.extIdx
		case a.dirIdx != b.dirIdx:
			return a.dirIdx - b.dirIdx
		}
		return strings.Compare(a.Name, b.Name)
	})
	return ms
}

// sameRank reports whether the tie-breakers cannot separate a and b.
func sameRank(a, b Match) bool {
	return a.Score == b.Score && a.Exact == b.Exact && a.extIdx == b.extIdx && a.dirIdx == b.dirIdx
}

func head(ms []Match, n int) []Match {
	if len(ms) > n {
		return ms[:n]
	}
	return ms
}
