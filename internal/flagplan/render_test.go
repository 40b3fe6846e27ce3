package flagplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atom(id, arg, group string) Atom {
	return Atom{ID: id, Args: []string{arg}, Sources: []string{id}, Group: group}
}

func TestRender_MinimalVector(t *testing.T) {
	args := Render(&Plan{}, "python")
	assert.Equal(t, []string{"python", "-m", "nuitka"}, args)
}

func TestRender_EmptyInterpreterFallsBack(t *testing.T) {
	args := Render(&Plan{}, "")
	assert.Equal(t, []string{DefaultInterpreter, "-m", "nuitka"}, args)
}

func TestRender_GroupOrdering(t *testing.T) {
	plan := &Plan{Atoms: []Atom{
		atom("advanced.debug", "--debug", "debug"),
		atom("basic.mode", "--mode=onefile", "mode"),
		atom("basic.output_dir", "--output-dir=dist", "output"),
	}}

	args := Render(plan, "python")
	assert.Equal(t, []string{
		"python", "-m", "nuitka",
		"--mode=onefile",
		"--output-dir=dist",
		"--debug",
	}, args)
}

func TestRender_SameGroupSortedByID(t *testing.T) {
	plan := &Plan{Atoms: []Atom{
		atom("modules.include_packages:pandas", "--include-package=pandas", "imports"),
		atom("modules.include_packages:numpy", "--include-package=numpy", "imports"),
	}}

	args := Render(plan, "python")
	assert.Equal(t, []string{
		"python", "-m", "nuitka",
		"--include-package=numpy",
		"--include-package=pandas",
	}, args)
}

func TestRender_UnknownGroupsRankLast(t *testing.T) {
	plan := &Plan{Atoms: []Atom{
		atom("b.unknown", "--b", "nonsense"),
		atom("a.unknown", "--a", "whatever"),
		atom("z.misc", "--z", "misc"),
	}}

	args := Render(plan, "python")
	assert.Equal(t, []string{
		"python", "-m", "nuitka",
		"--z",
		"--a",
		"--b",
	}, args)
}

func TestRender_EntryScriptLast(t *testing.T) {
	plan := &Plan{
		Atoms:       []Atom{atom("basic.mode", "--mode=onefile", "mode")},
		EntryScript: "app.py",
	}

	args := Render(plan, "python")
	assert.Equal(t, "app.py", args[len(args)-1])
}

func TestRender_DoesNotMutatePlan(t *testing.T) {
	plan := &Plan{Atoms: []Atom{
		atom("advanced.debug", "--debug", "debug"),
		atom("basic.mode", "--mode=onefile", "mode"),
	}}

	Render(plan, "python")
	assert.Equal(t, "advanced.debug", plan.Atoms[0].ID)
	assert.Equal(t, "basic.mode", plan.Atoms[1].ID)
}

func TestRender_Deterministic(t *testing.T) {
	plan := &Plan{Atoms: []Atom{
		atom("a.x", "--x", "misc"),
		atom("a.y", "--y", "mode"),
		atom("a.z", "--z", "opt"),
	}}

	first := Render(plan, "python")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Render(plan, "python"))
	}
}

func TestRenderString_QuotesSpaces(t *testing.T) {
	plan := &Plan{
		Atoms: []Atom{
			atom("platform.windows.company", "--windows-company-name=Acme Corp", "platform"),
		},
		EntryScript: "my app.py",
	}

	s := RenderString(plan, "python")
	assert.Equal(t, `python -m nuitka "--windows-company-name=Acme Corp" "my app.py"`, s)
}

func TestRenderString_PlainTokensUnquoted(t *testing.T) {
	plan := &Plan{
		Atoms:       []Atom{atom("basic.mode", "--mode=onefile", "mode")},
		EntryScript: "app.py",
	}
	assert.Equal(t, "python -m nuitka --mode=onefile app.py", RenderString(plan, "python"))
}

func TestCompileRender_EndToEnd(t *testing.T) {
	reg := parseRegistry(t, `{
	  "tabs": [{"id": "basic", "label": "Basic", "sections": [{"id": "s", "title": "S", "settings": [
	    {"key": "basic.mode", "flag_mapping": [{"type": "flag_value", "flag": "--mode=", "group": "mode", "omit_if": []}]},
	    {"key": "basic.input_file"}
	  ]}]}]
	}`)
	settings := map[string]any{"basic": map[string]any{
		"mode":       "onefile",
		"input_file": "app.py",
	}}

	plan, warnings := Compile(settings, reg)
	require.Empty(t, warnings)
	assert.Equal(t, []string{"python", "-m", "nuitka", "--mode=onefile", "app.py"}, Render(plan, "python"))
}
