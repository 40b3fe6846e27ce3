// Package state persists the flag plan of the last successful build so it
// can be diffed against the current configuration later.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodexForgeBR/nuitkactl/internal/flagplan"
)

const planFileName = "last-plan.json"

// DefaultDir is the default state directory, relative to the working
// directory.
const DefaultDir = ".nuitkactl"

// ErrNoPlan is returned by LoadPlan when no plan has been saved yet.
var ErrNoPlan = errors.New("no saved flag plan")

// SavePlan persists the plan as indented JSON under dir.
func SavePlan(plan *flagplan.Plan, dir string) error {
	data, err := json.MarshalIndent(plan, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	path := filepath.Join(dir, planFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write plan file: %w", err)
	}

	return nil
}

// LoadPlan reads the saved plan from dir. A missing file yields ErrNoPlan.
func LoadPlan(dir string) (*flagplan.Plan, error) {
	path := filepath.Join(dir, planFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var plan flagplan.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}

	return &plan, nil
}

// Clear removes the saved plan. Clearing when nothing is saved is not an
// error.
func Clear(dir string) error {
	err := os.Remove(filepath.Join(dir, planFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove plan file: %w", err)
	}
	return nil
}
