// Package diff computes the semantic difference between two flag plans.
//
// Plans are indexed by atom id, so the diff is insensitive to atom order and
// reports what a user actually changed: flags that appeared, disappeared,
// changed value, or kept their value but are now produced by different
// settings.
package diff

import (
	"sort"

	"github.com/CodexForgeBR/nuitkactl/internal/flagplan"
)

// Result holds the four classifications of atom ids. Each list is sorted
// lexicographically; an id present in both plans with identical args and
// sources appears in none of them.
type Result struct {
	Added             []string `json:"added"`
	Removed           []string `json:"removed"`
	Changed           []string `json:"changed"`
	ProvenanceChanged []string `json:"provenance_changed"`
}

type entry struct {
	args    []string
	sources []string
}

// index builds an id lookup for one plan. Duplicate ids within a plan are
// last-write-wins; colliding ids are a registry authoring mistake the differ
// does not detect.
func index(plan *flagplan.Plan) map[string]entry {
	m := make(map[string]entry, len(plan.Atoms))
	for _, atom := range plan.Atoms {
		m[atom.ID] = entry{args: atom.Args, sources: atom.Sources}
	}
	return m
}

// Plans classifies every atom id present in either plan. Ids only in newPlan
// are added, ids only in oldPlan are removed; ids in both are changed when
// their rendered arguments differ, and provenance-changed when the arguments
// match but the contributing source keys do not.
func Plans(oldPlan, newPlan *flagplan.Plan) Result {
	oldIdx := index(oldPlan)
	newIdx := index(newPlan)

	var result Result
	for id := range newIdx {
		if _, ok := oldIdx[id]; !ok {
			result.Added = append(result.Added, id)
		}
	}
	for id, oldEntry := range oldIdx {
		newEntry, ok := newIdx[id]
		if !ok {
			result.Removed = append(result.Removed, id)
			continue
		}
		switch {
		case !equal(oldEntry.args, newEntry.args):
			result.Changed = append(result.Changed, id)
		case !equal(oldEntry.sources, newEntry.sources):
			result.ProvenanceChanged = append(result.ProvenanceChanged, id)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Changed)
	sort.Strings(result.ProvenanceChanged)
	return result
}

// Empty reports whether the diff contains no entries in any category.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 &&
		len(r.Changed) == 0 && len(r.ProvenanceChanged) == 0
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
