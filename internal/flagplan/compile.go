package flagplan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/nuitkactl/internal/registry"
)

// Well-known configuration keys consulted outside the per-setting rules.
const (
	entryScriptKey  = "basic.input_file"
	msvcVersionKey  = "basic.msvc_version"
	showProgressKey = "output.show_progress"
	progressModeKey = "output.progress_mode"
)

// compilerFlags maps direct compiler choices to their literal flags.
// "auto" emits nothing and "msvc" is versioned, so neither appears here.
var compilerFlags = map[string]string{
	"mingw64": "--mingw64",
	"clang":   "--clang",
	"zig":     "--zig",
}

// Compile translates a configuration snapshot into a flag plan using the
// given registry. The second return value collects warnings for mapping
// rules the compiler does not recognize; unknown rules emit no atoms and are
// otherwise ignored so newer registry documents stay loadable.
//
// Missing configuration keys are treated as absent values, never as errors.
func Compile(settings map[string]any, reg *registry.Registry) (*Plan, []string) {
	plan := &Plan{}
	var warnings []string

	if script, ok := lookup(settings, entryScriptKey); ok {
		if s, ok := script.(string); ok {
			plan.EntryScript = s
		}
	}

	for _, def := range reg.AllSettings() {
		value, _ := lookup(settings, def.Key)
		for _, rule := range def.FlagMapping {
			id := rule.ID
			if id == "" {
				id = def.Key
			}

			switch rule.Type {
			case registry.RuleBool:
				compileBool(plan, def.Key, id, rule, value)
			case registry.RuleValue:
				compileValue(plan, def.Key, id, rule, value)
			case registry.RuleList:
				compileList(plan, def.Key, id, rule, value)
			case registry.RuleJoin:
				compileJoin(plan, def.Key, id, rule, value)
			case registry.RuleCompiler:
				compileCompiler(plan, settings, def.Key, rule.Group)
			case registry.RuleProgress:
				compileProgress(plan, settings, rule.Group)
			default:
				warnings = append(warnings,
					fmt.Sprintf("%s: unknown flag mapping type %q (ignored)", def.Key, rule.Type))
			}
		}
	}

	return plan, warnings
}

func compileBool(plan *Plan, key, id string, rule registry.Rule, value any) {
	b, ok := value.(bool)
	if !ok {
		return
	}
	switch {
	case b && rule.Flag != "":
		plan.Atoms = append(plan.Atoms, newAtom(id, strings.TrimSpace(rule.Flag), []string{key}, rule.Group))
	case !b && rule.ElseFlag != "":
		plan.Atoms = append(plan.Atoms, newAtom(id, strings.TrimSpace(rule.ElseFlag), []string{key}, rule.Group))
	}
}

func compileValue(plan *Plan, key, id string, rule registry.Rule, value any) {
	if value == nil || rule.Flag == "" {
		return
	}
	s := stringify(value)
	if s == "" {
		return
	}
	for _, omit := range rule.OmitIf {
		if s == omit {
			return
		}
	}
	plan.Atoms = append(plan.Atoms, newAtom(id, strings.TrimSpace(rule.Flag)+s, []string{key}, rule.Group))
}

func compileList(plan *Plan, key, id string, rule registry.Rule, value any) {
	if rule.Flag == "" {
		return
	}
	for _, item := range items(value) {
		if item == "" {
			continue
		}
		itemID := id + ":" + item
		plan.Atoms = append(plan.Atoms, newAtom(itemID, strings.TrimSpace(rule.Flag)+item, []string{key}, rule.Group))
	}
}

func compileJoin(plan *Plan, key, id string, rule registry.Rule, value any) {
	if rule.Flag == "" {
		return
	}
	var parts []string
	for _, item := range items(value) {
		if item != "" {
			parts = append(parts, item)
		}
	}
	if len(parts) == 0 {
		return
	}
	joined := strings.Join(parts, ",")
	plan.Atoms = append(plan.Atoms, newAtom(id, strings.TrimSpace(rule.Flag)+joined, []string{key}, rule.Group))
}

// compileCompiler handles the compiler-choice rule. It reads the setting's
// own value plus, for msvc, the toolset version setting.
func compileCompiler(plan *Plan, settings map[string]any, key, group string) {
	choice := stringOr(settings, key, "auto")
	switch choice {
	case "auto":
		return
	case "msvc":
		version := stringOr(settings, msvcVersionKey, "latest")
		arg := "--msvc=" + version
		plan.Atoms = append(plan.Atoms, newAtom("msvc", arg, []string{key, msvcVersionKey}, group))
	default:
		if flag, ok := compilerFlags[choice]; ok {
			plan.Atoms = append(plan.Atoms, newAtom(choice, flag, []string{key}, group))
		}
		// Unrecognized choices emit nothing.
	}
}

// compileProgress handles the joint show-progress / progress-style rule.
// An explicit false suppresses the progress bar regardless of style; an
// explicit true with a non-auto style selects a styled bar; every other
// combination emits nothing.
func compileProgress(plan *Plan, settings map[string]any, group string) {
	show, _ := lookup(settings, showProgressKey)
	mode := stringOr(settings, progressModeKey, "auto")

	if show == false {
		plan.Atoms = append(plan.Atoms, newAtom("no_progressbar", "--no-progressbar",
			[]string{showProgressKey}, group))
		return
	}
	if show == true && mode != "" && mode != "auto" {
		plan.Atoms = append(plan.Atoms, newAtom("progress_bar", "--progress-bar="+mode,
			[]string{showProgressKey, progressModeKey}, group))
	}
}

// lookup resolves a dotted key against the nested snapshot tree. The second
// return value reports whether the full path resolved.
func lookup(settings map[string]any, dotted string) (any, bool) {
	var current any = settings
	for _, part := range strings.Split(dotted, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stringOr resolves a dotted key to a non-empty string, falling back to def.
func stringOr(settings map[string]any, dotted, def string) string {
	v, ok := lookup(settings, dotted)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

// stringify renders a snapshot value as a command-line token fragment.
// JSON numbers arrive as float64; integral values render without a fraction.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// items coerces a snapshot value into a slice of stringified entries.
// Non-sequence values yield nothing.
func items(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				out = append(out, "")
				continue
			}
			out = append(out, stringify(item))
		}
		return out
	default:
		return nil
	}
}
