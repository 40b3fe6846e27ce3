package flagplan

import (
	"sort"
	"strings"
)

// DefaultInterpreter is used when no interpreter path is given.
const DefaultInterpreter = "python"

// Render flattens a plan into the final argument vector. Atoms are ordered
// by (group rank, atom id) so that two compiles of the same snapshot always
// render byte-identical output. The plan itself is not modified.
//
// The vector is [interpreter, "-m", "nuitka"], the sorted atom arguments,
// then the entry script last if one is set.
func Render(plan *Plan, interpreter string) []string {
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	args := []string{interpreter, "-m", "nuitka"}

	sorted := make([]Atom, len(plan.Atoms))
	copy(sorted, plan.Atoms)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := rank(sorted[i].Group), rank(sorted[j].Group)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].ID < sorted[j].ID
	})

	for _, atom := range sorted {
		args = append(args, atom.Args...)
	}
	if plan.EntryScript != "" {
		args = append(args, plan.EntryScript)
	}
	return args
}

// RenderString joins the rendered vector with single spaces, wrapping tokens
// that contain a space in double quotes. Embedded quotes are not escaped;
// the string is for display and clipboard use, not for feeding to a shell.
func RenderString(plan *Plan, interpreter string) string {
	args := Render(plan, interpreter)
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.Contains(arg, " ") && !(strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`)) {
			quoted = append(quoted, `"`+arg+`"`)
		} else {
			quoted = append(quoted, arg)
		}
	}
	return strings.Join(quoted, " ")
}

// rank returns the sort position of a group. Unknown groups rank after all
// known ones, equal to each other.
func rank(group string) int {
	if r, ok := groupRank[group]; ok {
		return r
	}
	return len(GroupOrder)
}
