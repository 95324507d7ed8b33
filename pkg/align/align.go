// Package align groups enriched records from both sources by primary key and
// pairs them by position within each group.
//
// Groups are visited in ascending lexical key order and records keep their
// input order inside a group, so the pair sequence is fully determined by the
// inputs.
package align

import (
	"sort"

	"github.com/agentstation/sheetdiff/pkg/enrich"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// Group holds the records of both sources sharing one primary key.
type Group struct {
	Key string
	A   []enrich.Entry
	B   []enrich.Entry

	// ManyToMany is set when the Source B records carry two or more
	// distinct secondary keys.
	ManyToMany bool
}

// Size returns the number of pairs the group produces.
func (g *Group) Size() int {
	return max(len(g.A), len(g.B))
}

// Pair is one positional pairing inside a group. At least one side is set.
type Pair struct {
	Key string
	// Index is the position inside the group.
	Index      int
	A          *enrich.Entry
	B          *enrich.Entry
	ManyToMany bool
}

// Side returns the entry of a source, or nil when that side is absent.
func (p Pair) Side(src record.Source) *enrich.Entry {
	if src == record.SourceB {
		return p.B
	}
	return p.A
}

// Excluded is a record that could not be aligned because its identifier was
// null or blank.
type Excluded struct {
	Source record.Source
	Index  int
	Raw    record.Value
}

// Alignment is the result of aligning two sources.
type Alignment struct {
	Groups   []Group
	Pairs    []Pair
	Excluded []Excluded
}

// ManyToManyGroups returns the number of ambiguous groups.
func (a *Alignment) ManyToManyGroups() int {
	n := 0
	for i := range a.Groups {
		if a.Groups[i].ManyToMany {
			n++
		}
	}
	return n
}

// ExcludedFrom returns the number of excluded records of a source.
func (a *Alignment) ExcludedFrom(src record.Source) int {
	n := 0
	for _, e := range a.Excluded {
		if e.Source == src {
			n++
		}
	}
	return n
}

// Align buckets both sources by primary key and produces the ordered pairs.
// Entries with an invalid key are reported in Excluded and take no part in
// grouping.
func Align(a, b []enrich.Entry) *Alignment {
	result := &Alignment{}
	groups := make(map[string]*Group)

	bucket := func(entries []enrich.Entry) {
		for _, e := range entries {
			if !e.Key.Valid {
				result.Excluded = append(result.Excluded, Excluded{
					Source: e.Source,
					Index:  e.Index,
					Raw:    e.Raw,
				})
				continue
			}
			g, ok := groups[e.Key.Primary]
			if !ok {
				g = &Group{Key: e.Key.Primary}
				groups[e.Key.Primary] = g
			}
			if e.Source == record.SourceB {
				g.B = append(g.B, e)
			} else {
				g.A = append(g.A, e)
			}
		}
	}
	bucket(a)
	bucket(b)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result.Groups = make([]Group, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		g.ManyToMany = manyToMany(g.B)
		result.Groups = append(result.Groups, *g)
	}

	// Pairs point into the groups slice, which is not modified past here.
	for gi := range result.Groups {
		g := &result.Groups[gi]
		for i := 0; i < g.Size(); i++ {
			p := Pair{Key: g.Key, Index: i, ManyToMany: g.ManyToMany}
			if i < len(g.A) {
				p.A = &g.A[i]
			}
			if i < len(g.B) {
				p.B = &g.B[i]
			}
			result.Pairs = append(result.Pairs, p)
		}
	}

	return result
}

// manyToMany counts distinct present secondary keys.
func manyToMany(entries []enrich.Entry) bool {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !e.Key.HasSecondary {
			continue
		}
		seen[e.Key.Secondary] = struct{}{}
		if len(seen) > 1 {
			return true
		}
	}
	return false
}
