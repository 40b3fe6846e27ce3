// Package presets defines curated bundles of configuration overrides for
// common build scenarios. A preset is applied verbatim on top of the current
// configuration.
package presets

import (
	"fmt"
	"reflect"

	"github.com/CodexForgeBR/nuitkactl/internal/config"
)

// Change is one key/value override a preset applies.
type Change struct {
	Key   string
	Value any
}

// Preset is a named set of configuration overrides.
type Preset struct {
	Name        string
	Description string
	Applies     []Change
}

// Applied records one change actually made to the configuration, with the
// value it replaced.
type Applied struct {
	Key string
	Old any
	New any
}

// Builtin lists the shipped presets in display order.
var Builtin = []Preset{
	{
		Name:        "Standalone GUI App (recommended)",
		Description: "Standalone app with no console window.",
		Applies: []Change{
			{"basic.mode", "standalone"},
			{"modules.follow_imports", true},
			{"output.show_progress", true},
			{"platform.windows.console_mode", "disable"},
		},
	},
	{
		Name:        "CLI Tool (console on)",
		Description: "Standalone CLI build with console.",
		Applies: []Change{
			{"basic.mode", "standalone"},
			{"modules.follow_imports", true},
			{"platform.windows.console_mode", "force"},
		},
	},
	{
		Name:        "Onefile Distribution",
		Description: "Single-file distribution.",
		Applies: []Change{
			{"basic.mode", "onefile"},
			{"modules.follow_imports", true},
			{"output.show_progress", true},
		},
	},
	{
		Name:        "Debug / Trace Build",
		Description: "Verbose debug instrumentation.",
		Applies: []Change{
			{"advanced.debug", true},
			{"advanced.trace_execution", true},
			{"advanced.unstripped", true},
		},
	},
	{
		Name:        "Minimal Size",
		Description: "Aggressive size reduction.",
		Applies: []Change{
			{"advanced.lto", "yes"},
			{"output.show_progress", false},
			{"output.quiet", true},
		},
	},
	{
		Name:        "Max Compatibility",
		Description: "Max compatibility settings.",
		Applies: []Change{
			{"advanced.full_compat", true},
			{"modules.follow_stdlib", true},
			{"advanced.static_libpython", false},
		},
	},
}

// Find returns the preset with the given name, or nil.
func Find(name string) *Preset {
	for i := range Builtin {
		if Builtin[i].Name == name {
			return &Builtin[i]
		}
	}
	return nil
}

// Apply writes the preset's overrides into the configuration and returns the
// changes that actually took effect. Keys already holding the target value
// are skipped.
func Apply(m *config.Manager, preset Preset) ([]Applied, error) {
	var applied []Applied
	for _, change := range preset.Applies {
		old := m.Get(change.Key)
		if reflect.DeepEqual(old, change.Value) {
			continue
		}
		if err := m.Set(change.Key, change.Value); err != nil {
			return applied, fmt.Errorf("apply preset %q: %w", preset.Name, err)
		}
		applied = append(applied, Applied{Key: change.Key, Old: old, New: change.Value})
	}
	return applied, nil
}
