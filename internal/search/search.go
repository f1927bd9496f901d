// Package search decides which rows stay visible for a query.
package search

import (
	"fmt"
	"strings"

	"darkarchiver/internal/errors"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"
)

// Mode selects how a query is matched against row names.
type Mode int

const (
	// Substring is a case-insensitive "contains" test.
	Substring Mode = iota
	// Glob treats queries containing *, ? or [ as shell patterns.
	Glob
	// Fuzzy matches the query characters in order, not necessarily adjacent.
	Fuzzy
)

// ParseMode maps a config value onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "substring":
		return Substring, nil
	case "glob":
		return Glob, nil
	case "fuzzy":
		return Fuzzy, nil
	}
	return Substring, errors.NewConfigError(fmt.Sprintf("unknown search mode %q", s), "search.mode", errors.InvalidConfig, nil)
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Glob:
		return "glob"
	case Fuzzy:
		return "fuzzy"
	default:
		return "substring"
	}
}

// Filter returns the indexes of names that match query, in their original
// order. An empty or blank query matches everything; otherwise the query is
// matched as typed, spaces included.
func Filter(mode Mode, query string, names []string) []int {
	if strings.TrimSpace(query) == "" {
		return all(len(names))
	}
	q := strings.ToLower(query)

	switch mode {
	case Glob:
		if strings.ContainsAny(q, "*?[") {
			if g, err := glob.Compile(q); err == nil {
				return matchWith(names, g.Match)
			}
			// an unfinished pattern such as "img[" falls back to substring
		}
	case Fuzzy:
		return fuzzyFilter(q, names)
	}

	return matchWith(names, func(name string) bool {
		return strings.Contains(name, q)
	})
}

func matchWith(names []string, match func(string) bool) []int {
	out := make([]int, 0, len(names))
	for i, name := range names {
		if match(strings.ToLower(name)) {
			out = append(out, i)
		}
	}
	return out
}

func fuzzyFilter(q string, names []string) []int {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	matches := fuzzy.Find(q, lowered)

	// fuzzy ranks by score; rows keep their display order instead
	hit := make([]bool, len(names))
	for _, m := range matches {
		hit[m.Index] = true
	}
	out := make([]int, 0, len(matches))
	for i, ok := range hit {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func all(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
