package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultFile = "theme.yaml"

type preference struct {
	Theme string `yaml:"theme"`
}

// Store persists the theme preference. Only the literal value "dark" selects
// dark mode; a missing file or any other value means light.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load() (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read theme preference: %w", err)
	}
	var pref preference
	if err := yaml.Unmarshal(data, &pref); err != nil {
		return false, fmt.Errorf("parse theme preference %s: %w", s.path, err)
	}
	return pref.Theme == Dark, nil
}

func (s *Store) Save(dark bool) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(preference{Theme: Name(dark)})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Toggler flips a Cell and writes every change through to its Store.
type Toggler struct {
	cell  *Cell
	store *Store
}

func NewToggler(cell *Cell, store *Store) *Toggler {
	return &Toggler{cell: cell, store: store}
}

func (t *Toggler) Cell() *Cell { return t.cell }

// Toggle applies the opposite theme. The flag changes even when persisting
// fails; the error is returned for the caller to report.
func (t *Toggler) Toggle() (bool, error) {
	dark := t.cell.Toggle()
	if t.store == nil {
		return dark, nil
	}
	return dark, t.store.Save(dark)
}

// Restore loads the stored preference into cell and writes it back, so the
// file always reflects the applied theme.
func Restore(cell *Cell, store *Store) error {
	dark, err := store.Load()
	if err != nil {
		return err
	}
	cell.SetDark(dark)
	return store.Save(dark)
}
