// Package config manages the nuitkactl configuration document.
//
// The configuration is held as a JSON document and addressed with dotted
// paths (e.g. "basic.mode", "platform.windows.icon"). Loading a file
// deep-merges it over the built-in defaults, so every key the setting
// registry references always resolves to some value and the compiler never
// sees a partial snapshot.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

//go:embed defaults.json
var defaultDocument []byte

// Manager holds the current configuration document.
type Manager struct {
	doc      []byte
	filePath string
}

// New returns a Manager populated with the built-in defaults.
func New() *Manager {
	doc := make([]byte, len(defaultDocument))
	copy(doc, defaultDocument)
	return &Manager{doc: doc}
}

// Get returns the value at a dotted key, or nil if the path does not resolve.
func (m *Manager) Get(key string) any {
	return gjson.GetBytes(m.doc, key).Value()
}

// GetString returns the string value at a dotted key, or "" for anything
// that is not a string.
func (m *Manager) GetString(key string) string {
	result := gjson.GetBytes(m.doc, key)
	if result.Type != gjson.String {
		return ""
	}
	return result.String()
}

// GetBool returns the boolean value at a dotted key, or false for anything
// that is not a boolean.
func (m *Manager) GetBool(key string) bool {
	result := gjson.GetBytes(m.doc, key)
	return result.Type == gjson.True
}

// GetStrings returns the array value at a dotted key as strings. Non-array
// values yield nil.
func (m *Manager) GetStrings(key string) []string {
	result := gjson.GetBytes(m.doc, key)
	if !result.IsArray() {
		return nil
	}
	var out []string
	for _, item := range result.Array() {
		out = append(out, item.String())
	}
	return out
}

// Set writes a value at a dotted key, creating intermediate objects as
// needed.
func (m *Manager) Set(key string, value any) error {
	doc, err := sjson.SetBytes(m.doc, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	m.doc = doc
	return nil
}

// Settings returns the decoded configuration tree for the flag plan
// compiler.
func (m *Manager) Settings() map[string]any {
	var tree map[string]any
	// The document is always valid JSON; a decode failure would mean a bug
	// in Set or Load.
	if err := json.Unmarshal(m.doc, &tree); err != nil {
		return map[string]any{}
	}
	return tree
}

// Load reads a configuration file and deep-merges it over the defaults.
// Leaf values (including whole arrays) from the file replace the default;
// nested objects merge recursively. Keys not present in the defaults are
// kept.
func (m *Manager) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("parse config %s: not valid JSON", path)
	}
	loaded := gjson.ParseBytes(data)
	if !loaded.IsObject() {
		return fmt.Errorf("parse config %s: top-level value must be an object", path)
	}

	doc := make([]byte, len(defaultDocument))
	copy(doc, defaultDocument)
	doc, err = mergeValue(doc, "", loaded)
	if err != nil {
		return fmt.Errorf("merge config: %w", err)
	}

	m.doc = doc
	m.filePath = path
	return nil
}

// Save writes the configuration as indented JSON, creating parent
// directories as needed.
func (m *Manager) Save(path string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, m.doc, "", "    "); err != nil {
		return fmt.Errorf("indent config: %w", err)
	}
	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	m.filePath = path
	return nil
}

// Reset restores the built-in defaults and forgets the file path.
func (m *Manager) Reset() {
	doc := make([]byte, len(defaultDocument))
	copy(doc, defaultDocument)
	m.doc = doc
	m.filePath = ""
}

// FilePath returns the path of the last loaded or saved file, or "".
func (m *Manager) FilePath() string {
	return m.filePath
}

// mergeValue writes every leaf of value into doc under the dotted prefix.
// Objects recurse; everything else (scalars and arrays) replaces the value
// at its path wholesale.
func mergeValue(doc []byte, prefix string, value gjson.Result) ([]byte, error) {
	if !value.IsObject() {
		return sjson.SetRawBytes(doc, prefix, []byte(value.Raw))
	}

	var err error
	value.ForEach(func(key, child gjson.Result) bool {
		path := escapePathKey(key.String())
		if prefix != "" {
			path = prefix + "." + path
		}
		doc, err = mergeValue(doc, path, child)
		return err == nil
	})
	return doc, err
}

// escapePathKey escapes path metacharacters in one object key. User maps
// such as plugins.anti_bloat.custom_choices hold module names like
// "numpy.core" as single keys; an unescaped dot would be read as nesting.
func escapePathKey(key string) string {
	if !strings.ContainsAny(key, `.*?\|`) {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
