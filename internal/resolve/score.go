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

// In this file: similarity scoring.

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
)

const (
	// partialBase is the lowest score given to a hint that appears inside a
	// filename (e.g. "payroll" in "payroll_2024.xlsx").
	partialBase = 0.7
	// partialMinLen is the shortest hint that qualifies for a partial match.
	partialMinLen = 3
	// partialWindow is the minimum similarity between the hint and the best
	// aligned substring of the filename for a partial match.
	partialWindow = 0.8
)

// fold returns the case-folded s.  A Caser is stateful, hence a new one per
// call.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// similarity returns the similarity score of the hint against the filename
// in the range [0, 1], and whether the hint equals the filename or its stem,
// ignoring case.
func similarity(hint, name string) (float64, bool) {
	h, n := fold(hint), fold(name)
	stem := strings.TrimSuffix(n, filepath.Ext(n))
	if h == n || h == stem {
		return 1, true
	}
	return max(score(h, n), score(h, stem)), false
}

// score combines the edit distance ratio with the partial match score.  A
// partial match requires the hint letters to appear in order in the target
// and a substring of the target, as long as the hint, to be close to it.
func score(h, target string) float64 {
	s := ratio(h, target)
	hl, tl := utf8.RuneCountInString(h), utf8.RuneCountInString(target)
	if hl < partialMinLen || hl >= tl || !fuzzy.MatchNormalizedFold(h, target) {
		return s
	}
	w := windowRatio([]rune(h), []rune(target))
	if w < partialWindow {
		return s
	}
	return max(s, w*(partialBase+(1-partialBase)*float64(hl)/float64(tl)))
}

// ratio returns 1 - distance/maxlen.
func ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(distance(ra, rb))/float64(longest)
}

// windowRatio returns the best ratio of h against every substring of t of
// the same length.  len(h) must not exceed len(t).
func windowRatio(h, t []rune) float64 {
	best := 0.0
	for i := 0; i+len(h) <= len(t); i++ {
		d := distance(h, t[i:i+len(h)])
		best = max(best, 1-float64(d)/float64(len(h)))
		if best == 1 {
			break
		}
	}
	return best
}

// distance is the optimal string alignment distance: insertions, deletions,
// substitutions and transpositions of adjacent characters cost one edit.
func distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	// three rows: i-2, i-1 and i.
	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[len(b)]
}
