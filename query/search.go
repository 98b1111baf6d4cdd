package query

import (
	"cmp"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/svcdb/services"
)

// Match is an entry ranked by [Search].
type Match struct {
	Entry services.Entry
	// Index is the position of Entry in the searched slice.
	Index int
	// Name is the name or alias that matched best.
	Name string
	// Score is the fuzzy match score; higher is better.
	Score int
	// MatchedIndexes are the byte offsets in Name of the matched characters.
	MatchedIndexes []int
}

// candidates flattens the names and aliases of entries for fuzzy matching.
type candidates struct {
	names []string
	owner []int // owner[i] is the entry index of names[i]
}

func makeCandidates(entries []services.Entry) candidates {
	var c candidates

	for i, e := range entries {
		for name := range e.Names() {
			c.names = append(c.names, name)
			c.owner = append(c.owner, i)
		}
	}

	return c
}

func (c candidates) String(i int) string { return c.names[i] }
func (c candidates) Len() int            { return len(c.names) }

// Search ranks entries whose name or an alias fuzzy-matches pattern. Each
// entry appears at most once, with its best scoring name. Results are sorted
// by descending score, ties broken by position in entries.
//
// An empty pattern matches every entry with a zero score.
func Search(entries []services.Entry, pattern string) []Match {
	if pattern == "" {
		all := make([]Match, len(entries))
		for i, e := range entries {
			all[i] = Match{Entry: e, Index: i, Name: e.Name}
		}

		return all
	}

	c := makeCandidates(entries)
	best := make(map[int]Match)

	for _, m := range fuzzy.FindFrom(pattern, c) {
		owner := c.owner[m.Index]

		if prev, ok := best[owner]; ok && prev.Score >= m.Score {
			continue
		}

		best[owner] = Match{
			Entry:          entries[owner],
			Index:          owner,
			Name:           m.Str,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}

	matches := make([]Match, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}

		return cmp.Compare(a.Index, b.Index)
	})

	return matches
}
