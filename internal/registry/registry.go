// Package registry loads the declarative setting definitions that drive the
// flag plan compiler and the configuration UI grouping.
//
// The registry document is JSON shaped as tabs → sections → settings. Each
// setting carries one or more flag mapping rules describing how its value
// becomes command-line flags. The default document is embedded in the binary;
// tests and callers needing isolation load an explicit file instead.
package registry

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrMalformedRegistry is returned when the registry resource is missing,
// unreadable, or not well-formed JSON.
var ErrMalformedRegistry = errors.New("malformed setting registry")

// RuleType selects the translation algorithm for one flag mapping rule.
// The set is closed; the compiler dispatches on it exhaustively and collects
// a warning for any value outside it.
type RuleType string

const (
	RuleBool     RuleType = "flag_bool"
	RuleValue    RuleType = "flag_value"
	RuleList     RuleType = "flag_list"
	RuleJoin     RuleType = "flag_join"
	RuleCompiler RuleType = "compiler"
	RuleProgress RuleType = "progress"
)

// Rule describes how one setting's value becomes zero or more flags.
type Rule struct {
	Type     RuleType `json:"type"`
	Flag     string   `json:"flag,omitempty"`
	ElseFlag string   `json:"else_flag,omitempty"`
	OmitIf   []string `json:"omit_if,omitempty"`
	Group    string   `json:"group,omitempty"`
	ID       string   `json:"id,omitempty"`
}

// PlatformConstraints limits a setting to the named operating systems.
// An empty or absent constraint means the setting applies everywhere.
type PlatformConstraints struct {
	OS []string `json:"os"`
}

// Definition is one configurable option in the registry.
type Definition struct {
	Key                 string               `json:"key"`
	Label               string               `json:"label"`
	Description         string               `json:"description"`
	Effect              string               `json:"effect"`
	Risk                string               `json:"risk"`
	Impact              []string             `json:"impact"`
	Control             map[string]any       `json:"control"`
	FlagMapping         []Rule               `json:"flag_mapping"`
	PlatformConstraints *PlatformConstraints `json:"platform_constraints,omitempty"`

	// Filled from the enclosing document structure, not from the setting
	// object itself. Carried for provenance and UI filtering.
	TabID        string `json:"-"`
	SectionID    string `json:"-"`
	SectionTitle string `json:"-"`
}

// Section groups settings inside a tab.
type Section struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Settings []Definition `json:"settings"`
}

// Tab is one top-level page of the configuration surface.
type Tab struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Sections []Section `json:"sections"`
}

type document struct {
	Tabs []Tab `json:"tabs"`
}

// Registry holds the parsed setting definitions with key and tab indices.
// It is read-only after construction.
type Registry struct {
	tabs    []Tab
	ordered []*Definition
	byKey   map[string]*Definition
	byTab   map[string][]*Definition
}

// Parse builds a Registry from raw registry JSON.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRegistry, err)
	}

	r := &Registry{
		tabs:  doc.Tabs,
		byKey: make(map[string]*Definition),
		byTab: make(map[string][]*Definition),
	}
	for ti := range r.tabs {
		tab := &r.tabs[ti]
		for si := range tab.Sections {
			section := &tab.Sections[si]
			for di := range section.Settings {
				def := &section.Settings[di]
				def.TabID = tab.ID
				def.SectionID = section.ID
				def.SectionTitle = section.Title
				if def.Risk == "" {
					def.Risk = "safe"
				}
				r.ordered = append(r.ordered, def)
				r.byKey[def.Key] = def
				r.byTab[tab.ID] = append(r.byTab[tab.ID], def)
			}
		}
	}
	return r, nil
}

// Load reads and parses a registry document from the given file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMalformedRegistry, path, err)
	}
	return Parse(data)
}

// Setting returns the definition for a dotted key, or nil if unknown.
func (r *Registry) Setting(key string) *Definition {
	return r.byKey[key]
}

// AllSettings returns every definition in document order.
func (r *Registry) AllSettings() []*Definition {
	out := make([]*Definition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// TabSettings returns the definitions belonging to one tab, in document order.
func (r *Registry) TabSettings(tabID string) []*Definition {
	defs := r.byTab[tabID]
	out := make([]*Definition, len(defs))
	copy(out, defs)
	return out
}

// Tabs returns the raw tab descriptors for UI consumption.
func (r *Registry) Tabs() []Tab {
	out := make([]Tab, len(r.tabs))
	copy(out, r.tabs)
	return out
}

//go:embed definitions.json
var embeddedDefinitions []byte

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry built from the embedded
// definitions document. The instance is memoized; ResetDefault discards it.
func Default() (*Registry, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry != nil {
		return defaultRegistry, nil
	}
	r, err := Parse(embeddedDefinitions)
	if err != nil {
		return nil, err
	}
	defaultRegistry = r
	return r, nil
}

// ResetDefault clears the memoized default registry. Intended for tests that
// need a fresh instance.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = nil
}
