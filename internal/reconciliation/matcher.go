// Package reconciliation resolves player names from the free-text extra-stats
// panels against the names extracted from the box-score grid. Panel tokens are
// frequently abbreviated or misspelled relative to the grid ("Jon Smith" vs
// "John Smith"), so resolution is exact-match first, fuzzy second.
package reconciliation

import (
	"sort"
	"strings"
)

// MatchCutoff is the minimum similarity ratio for a fuzzy match.
const MatchCutoff = 0.6

// NameMatcher matches stat-line tokens to a fixed set of candidate names.
// Candidates are indexed by their cleaned, lower-cased form; several rows may
// share one cleaned name (same-name players on a roster).
type NameMatcher struct {
	index map[string][]int // cleaned name -> positions in the source slice
	names []string         // distinct cleaned names, insertion order
}

// NewNameMatcher builds a matcher over a candidate name list. clean is applied
// to every candidate; empty results are skipped. Positions in the returned
// matches refer to indices in the candidates slice.
func NewNameMatcher(candidates []string, clean func(string) string) *NameMatcher {
	m := &NameMatcher{index: make(map[string][]int)}

	for i, raw := range candidates {
		c := strings.ToLower(clean(raw))
		if c == "" {
			continue
		}
		if _, seen := m.index[c]; !seen {
			m.names = append(m.names, c)
		}
		m.index[c] = append(m.index[c], i)
	}

	return m
}

// Resolve maps a token to candidate positions. Exact match on the cleaned
// name wins outright; otherwise the closest name at or above MatchCutoff is
// taken. Ties on ratio break on smaller length difference from the token,
// then lexically smallest name, so resolution never depends on map order.
// A nil result means the token could not be matched.
func (m *NameMatcher) Resolve(token string, clean func(string) string) []int {
	c := strings.ToLower(clean(token))
	if c == "" {
		return nil
	}

	if rows, ok := m.index[c]; ok {
		return rows
	}

	best := ""
	bestRatio := 0.0
	for _, name := range m.names {
		r := SimilarityRatio(c, name)
		if r < MatchCutoff || r < bestRatio {
			continue
		}
		if r > bestRatio {
			best, bestRatio = name, r
			continue
		}
		// Equal ratio: prefer the closer length, then lexical order.
		if lenDiff(c, name) < lenDiff(c, best) || (lenDiff(c, name) == lenDiff(c, best) && name < best) {
			best = name
		}
	}

	if best == "" {
		return nil
	}
	return m.index[best]
}

// Names returns the distinct cleaned candidate names, sorted. Used for
// warning messages when a token fails to resolve.
func (m *NameMatcher) Names() []string {
	out := append([]string(nil), m.names...)
	sort.Strings(out)
	return out
}

func lenDiff(a, b string) int {
	d := len(a) - len(b)
	if d < 0 {
		return -d
	}
	return d
}

// SimilarityRatio measures how alike two strings are as
// 2*LCS(a,b)/(len(a)+len(b)), in [0,1]. Identical strings score 1,
// disjoint strings 0.
func SimilarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	// Longest common subsequence over bytes, rolling rows.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}

	lcs := prev[len(b)]
	return 2.0 * float64(lcs) / float64(len(a)+len(b))
}
