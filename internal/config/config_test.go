package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config document to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew_BuiltinDefaults(t *testing.T) {
	m := New()

	assert.Equal(t, "standalone", m.GetString("basic.mode"))
	assert.Equal(t, "auto", m.GetString("basic.compiler"))
	assert.True(t, m.GetBool("modules.follow_imports"))
	assert.True(t, m.GetBool("output.show_progress"))
	assert.Empty(t, m.GetString("basic.input_file"))
}

func TestGet_MissingPathIsNil(t *testing.T) {
	m := New()
	assert.Nil(t, m.Get("does.not.exist"))
}

func TestGetString_NonStringIsEmpty(t *testing.T) {
	m := New()
	assert.Empty(t, m.GetString("modules.follow_imports"))
	assert.Empty(t, m.GetString("basic"))
}

func TestGetBool_NonBoolIsFalse(t *testing.T) {
	m := New()
	assert.False(t, m.GetBool("basic.mode"))
	assert.False(t, m.GetBool("does.not.exist"))
}

func TestGetStrings(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("modules.include_packages", []string{"numpy", "pandas"}))

	assert.Equal(t, []string{"numpy", "pandas"}, m.GetStrings("modules.include_packages"))
	assert.Nil(t, m.GetStrings("basic.mode"))
	assert.Nil(t, m.GetStrings("does.not.exist"))
}

func TestSet_RoundTrip(t *testing.T) {
	m := New()

	require.NoError(t, m.Set("basic.mode", "standalone"))
	assert.Equal(t, "standalone", m.GetString("basic.mode"))

	require.NoError(t, m.Set("advanced.jobs", 8))
	assert.EqualValues(t, 8, m.Get("advanced.jobs"))
}

func TestSet_CreatesIntermediateObjects(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("plugins.anti_bloat.custom_choices.numpy", "warning"))
	assert.Equal(t, "warning", m.GetString("plugins.anti_bloat.custom_choices.numpy"))
}

func TestSettings_DecodesTree(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("basic.input_file", "app.py"))

	tree := m.Settings()
	basic, ok := tree["basic"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "app.py", basic["input_file"])
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `{
	  "basic": {"input_file": "app.py", "mode": "onefile"},
	  "advanced": {"jobs": 4}
	}`)

	m := New()
	require.NoError(t, m.Load(path))

	assert.Equal(t, "app.py", m.GetString("basic.input_file"))
	assert.Equal(t, "onefile", m.GetString("basic.mode"))
	assert.EqualValues(t, 4, m.Get("advanced.jobs"))
	// Untouched defaults survive the merge.
	assert.Equal(t, "auto", m.GetString("basic.compiler"))
	assert.True(t, m.GetBool("modules.follow_imports"))
	assert.Equal(t, path, m.FilePath())
}

func TestLoad_ArraysReplaceWholesale(t *testing.T) {
	path := writeConfig(t, `{"basic": {"python_flags": ["no_site", "no_asserts"]}}`)

	m := New()
	require.NoError(t, m.Load(path))
	assert.Equal(t, []string{"no_site", "no_asserts"}, m.GetStrings("basic.python_flags"))
}

func TestLoad_DottedKeysStayLiteral(t *testing.T) {
	path := writeConfig(t, `{
	  "plugins": {"anti_bloat": {"custom_choices": {"numpy.core": "nofollow", "pkg*": "warning"}}}
	}`)

	m := New()
	require.NoError(t, m.Load(path))

	tree := m.Settings()
	plugins, ok := tree["plugins"].(map[string]any)
	require.True(t, ok)
	antiBloat, ok := plugins["anti_bloat"].(map[string]any)
	require.True(t, ok)
	choices, ok := antiBloat["custom_choices"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "nofollow", choices["numpy.core"])
	assert.Equal(t, "warning", choices["pkg*"])
	assert.NotContains(t, choices, "numpy")
}

func TestLoad_KeepsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `{"custom": {"extra": true}}`)

	m := New()
	require.NoError(t, m.Load(path))
	assert.Equal(t, true, m.Get("custom.extra"))
}

func TestLoad_ResetsPreviousEdits(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("basic.mode", "onefile"))

	path := writeConfig(t, `{"basic": {"input_file": "app.py"}}`)
	require.NoError(t, m.Load(path))

	// Load starts from the defaults, not from the edited document.
	assert.Equal(t, "standalone", m.GetString("basic.mode"))
}

func TestLoad_MissingFile(t *testing.T) {
	m := New()
	err := m.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_InvalidJSON(t *testing.T) {
	m := New()
	err := m.Load(writeConfig(t, "{broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestLoad_NonObjectTopLevel(t *testing.T) {
	m := New()
	err := m.Load(writeConfig(t, `[1, 2, 3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an object")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	m := New()
	require.NoError(t, m.Set("basic.input_file", "app.py"))
	require.NoError(t, m.Save(path))
	assert.Equal(t, path, m.FilePath())

	loaded := New()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, "app.py", loaded.GetString("basic.input_file"))
}

func TestReset(t *testing.T) {
	m := New()
	require.NoError(t, m.Set("basic.mode", "onefile"))
	require.NoError(t, m.Save(filepath.Join(t.TempDir(), "config.json")))

	m.Reset()
	assert.Equal(t, "standalone", m.GetString("basic.mode"))
	assert.Empty(t, m.FilePath())
}
