package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/nuitkactl/internal/flagplan"
)

func samplePlan() *flagplan.Plan {
	return &flagplan.Plan{
		Atoms: []flagplan.Atom{
			{
				ID:      "basic.mode",
				Args:    []string{"--mode=onefile"},
				Sources: []string{"basic.mode"},
				Group:   "mode",
			},
			{
				ID:      "msvc",
				Args:    []string{"--msvc=latest"},
				Sources: []string{"basic.compiler", "basic.msvc_version"},
				Group:   "platform",
			},
		},
		EntryScript: "app.py",
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SavePlan(samplePlan(), dir))

	loaded, err := LoadPlan(dir)
	require.NoError(t, err)
	assert.Equal(t, samplePlan(), loaded)
}

func TestSavePlan_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	require.NoError(t, SavePlan(samplePlan(), dir))

	_, err := LoadPlan(dir)
	assert.NoError(t, err)
}

func TestLoadPlan_MissingIsErrNoPlan(t *testing.T) {
	_, err := LoadPlan(t.TempDir())
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestLoadPlan_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SavePlan(samplePlan(), dir))

	path := filepath.Join(dir, planFileName)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := LoadPlan(dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPlan)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SavePlan(samplePlan(), dir))

	require.NoError(t, Clear(dir))
	_, err := LoadPlan(dir)
	assert.ErrorIs(t, err, ErrNoPlan)

	// Clearing again is not an error.
	assert.NoError(t, Clear(dir))
}
