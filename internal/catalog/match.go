// internal/catalog/match.go
package catalog

import (
	"sort"
	"strings"
)

// Match is the in-memory counterpart of SearchIndex.Search. Entries are ordered by
// how many keywords they contain, then by catalog position. Category and difficulty
// filters compare case-insensitively.
func (c *Catalog) Match(q SearchQuery) []string {
	if c == nil {
		return []string{}
	}
	keywords := strings.Fields(strings.ToLower(q.Keywords))

	type hit struct {
		id    string
		score int
	}
	hits := make([]hit, 0, len(c.entries))
	for _, e := range c.entries {
		if q.Category != "" && !strings.EqualFold(e.Category, q.Category) {
			continue
		}
		if q.Difficulty != "" && !strings.EqualFold(e.Difficulty, q.Difficulty) {
			continue
		}

		score := 0
		if len(keywords) > 0 {
			fields := []string{e.ID, e.Name, e.Description, e.Category}
			fields = append(fields, e.Skills...)
			fields = append(fields, e.Tools...)
			text := strings.ToLower(strings.Join(fields, " "))
			for _, k := range keywords {
				if strings.Contains(text, k) {
					score++
				}
			}
			if score == 0 {
				continue
			}
		}
		hits = append(hits, hit{id: e.ID, score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	size := q.Size
	if size <= 0 || size > len(hits) {
		size = len(hits)
	}
	ids := make([]string, size)
	for i := range ids {
		ids[i] = hits[i].id
	}
	return ids
}
