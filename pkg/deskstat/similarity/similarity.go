// Package similarity estimates how close two research fields are by the
// overlap of the journals assigned to them.
package similarity

import "sort"

// Field is one entry of the classification's field table.
type Field struct {
	ID          string
	Description string
	Area        string
	Abbrev      string
}

// Counter accumulates per-field journal counts and pairwise
// co-occurrence counts. Counting iterates journal assignments, so the
// cost scales with journals times the square of fields-per-journal, not
// with the square of the field universe.
type Counter struct {
	fields      map[string]struct{}
	journalsPer map[string]int64
	shared      map[fieldPair]int64
}

type fieldPair struct {
	A, B string
}

func newPair(a, b string) fieldPair {
	if a > b {
		a, b = b, a
	}
	return fieldPair{A: a, B: b}
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		fields:      make(map[string]struct{}),
		journalsPer: make(map[string]int64),
		shared:      make(map[fieldPair]int64),
	}
}

// RegisterField declares a field so it appears in the output matrix even
// when no journal is assigned to it.
func (c *Counter) RegisterField(id string) {
	if id == "" {
		return
	}
	c.fields[id] = struct{}{}
}

// AddJournal records one journal's field assignments. Duplicate field
// IDs within a journal are counted once.
func (c *Counter) AddJournal(fieldIDs []string) {
	seen := make(map[string]struct{}, len(fieldIDs))
	for _, id := range fieldIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
	}

	unique := make([]string, 0, len(seen))
	for id := range seen {
		unique = append(unique, id)
	}
	sort.Strings(unique)

	for _, id := range unique {
		c.fields[id] = struct{}{}
		c.journalsPer[id]++
	}
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			c.shared[newPair(unique[i], unique[j])]++
		}
	}
}

// JournalCount returns how many journals are assigned to a field.
func (c *Counter) JournalCount(id string) int64 {
	return c.journalsPer[id]
}

// SharedCount returns how many journals two fields share.
func (c *Counter) SharedCount(a, b string) int64 {
	return c.shared[newPair(a, b)]
}

// Score is the similarity of one unordered field pair.
type Score struct {
	A, B         string
	Intersection int64
	Union        int64
	Jaccard      float64
}

// Matrix returns the full upper triangle of the field-by-field Jaccard
// matrix: every unordered pair of registered fields, self-pairs
// excluded. Pairs sharing no journal appear with similarity 0; the
// similarity of two fields with no journals at all is 0 by convention.
func (c *Counter) Matrix() []Score {
	ids := make([]string, 0, len(c.fields))
	for id := range c.fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Score
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			inter := c.shared[newPair(ids[i], ids[j])]
			union := c.journalsPer[ids[i]] + c.journalsPer[ids[j]] - inter
			s := Score{A: ids[i], B: ids[j], Intersection: inter, Union: union}
			if union > 0 {
				s.Jaccard = float64(inter) / float64(union)
			}
			out = append(out, s)
		}
	}
	return out
}

// Top returns the n highest-similarity pairs, ties broken by pair name
// for stable report output.
func (c *Counter) Top(n int) []Score {
	m := c.Matrix()
	sort.Slice(m, func(i, j int) bool {
		if m[i].Jaccard != m[j].Jaccard {
			return m[i].Jaccard > m[j].Jaccard
		}
		if m[i].A != m[j].A {
			return m[i].A < m[j].A
		}
		return m[i].B < m[j].B
	})
	if n > 0 && len(m) > n {
		m = m[:n]
	}
	return m
}
