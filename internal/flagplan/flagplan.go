// Package flagplan compiles a configuration snapshot into an ordered,
// provenance-tracked set of Nuitka command-line flags.
//
// Compilation walks the setting registry in document order and emits zero or
// more flag atoms per setting according to its declared mapping rules. The
// plan keeps insertion order; the final deterministic ordering is imposed by
// Render.
package flagplan

import (
	"sort"
)

// GroupOrder is the fixed total ordering of semantic flag groups used by
// Render. Groups not in this list sort after all known groups.
var GroupOrder = []string{
	"mode",
	"output",
	"imports",
	"data",
	"platform",
	"opt",
	"compat",
	"debug",
	"runtime",
	"plugins",
	"misc",
}

var groupRank = func() map[string]int {
	m := make(map[string]int, len(GroupOrder))
	for i, name := range GroupOrder {
		m[name] = i
	}
	return m
}()

// Atom is one emitted command-line token together with its identity, the
// configuration keys that produced it, and its semantic group. Atoms are
// value objects; they are never mutated after construction.
type Atom struct {
	ID      string   `json:"id"`
	Args    []string `json:"args"`
	Sources []string `json:"sources"`
	Group   string   `json:"group"`
}

// Plan is the compiled output for one configuration snapshot. Atoms keep
// insertion (registry) order; duplicate ids are possible when the registry
// author assigns colliding ids and are resolved last-write-wins at diff time.
type Plan struct {
	Atoms       []Atom `json:"atoms"`
	EntryScript string `json:"entry_script,omitempty"`
}

// newAtom builds an Atom with a normalized group and sorted, deduplicated
// sources.
func newAtom(id, arg string, sources []string, group string) Atom {
	if group == "" {
		group = "misc"
	}
	seen := make(map[string]bool, len(sources))
	uniq := make([]string, 0, len(sources))
	for _, s := range sources {
		if !seen[s] {
			seen[s] = true
			uniq = append(uniq, s)
		}
	}
	sort.Strings(uniq)
	return Atom{ID: id, Args: []string{arg}, Sources: uniq, Group: group}
}
