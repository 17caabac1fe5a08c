package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCellToggle(t *testing.T) {
	c := NewCell(false)
	if c.Dark() {
		t.Fatal("expected light cell")
	}
	if !c.Toggle() {
		t.Error("toggle from light should return dark")
	}
	if c.Name() != Dark {
		t.Errorf("expected %q, got %q", Dark, c.Name())
	}
	if c.Toggle() {
		t.Error("toggle from dark should return light")
	}

	var zero Cell
	if zero.Dark() {
		t.Error("zero cell should be light")
	}
}

func TestStoreMissingFileIsLight(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), DefaultFile))
	dark, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if dark {
		t.Error("missing preference should load as light")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFile)
	st := NewStore(path)

	if err := st.Save(true); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	dark, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !dark {
		t.Error("expected dark after saving dark")
	}
}

func TestStoreUnknownValueIsLight(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("theme: solarized\n"), 0644); err != nil {
		t.Fatal(err)
	}
	dark, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if dark {
		t.Error("only \"dark\" should select dark mode")
	}
}

func TestTogglerPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	st := NewStore(path)
	cell := NewCell(false)
	tg := NewToggler(cell, st)

	dark, err := tg.Toggle()
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !dark || !cell.Dark() {
		t.Error("expected dark after toggle")
	}
	stored, _ := st.Load()
	if !stored {
		t.Error("toggle was not persisted")
	}
}

func TestRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	st := NewStore(path)
	if err := st.Save(true); err != nil {
		t.Fatal(err)
	}
	cell := NewCell(false)
	if err := Restore(cell, st); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !cell.Dark() {
		t.Error("restore should apply stored dark preference")
	}
}

func TestBackground(t *testing.T) {
	if Background(true) != DarkBackground || Background(false) != LightBackground {
		t.Error("background does not follow the theme")
	}
}
