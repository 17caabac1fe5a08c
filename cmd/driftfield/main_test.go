package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func record(t *testing.T, data string, extra ...string) string {
	t.Helper()
	args := append([]string{"record", "--data", data, "--seed", "7", "--frames", "20", "--every", "5",
		"--width", "200", "--height", "100", "--count", "8"}, extra...)
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	for _, line := range strings.Split(out, "\n") {
		if id, ok := strings.CutPrefix(line, "run id: "); ok {
			return id
		}
	}
	t.Fatalf("no run id in output:\n%s", out)
	return ""
}

func TestRecordSavesRun(t *testing.T) {
	data := t.TempDir()
	id := record(t, data, "--theme", "dark")

	st := storage.New(data)
	meta, err := st.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Frames != 20 || meta.Count != 8 || meta.Every != 5 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Width != 200 || meta.Height != 100 || meta.Seed != 7 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Theme != "dark" || meta.Alpha != 0.2 {
		t.Errorf("expected dark theme with alpha 0.2, got %s %v", meta.Theme, meta.Alpha)
	}
	if _, ok := meta.Metrics["mean_speed"]; !ok {
		t.Errorf("metrics missing mean_speed: %v", meta.Metrics)
	}

	snaps, err := st.LoadFrames(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(snaps))
	}
	for i, s := range snaps {
		if s.Frame != (i+1)*5 {
			t.Errorf("snapshot %d has frame %d", i, s.Frame)
		}
		if len(s.Particles) != 8 {
			t.Errorf("snapshot %d has %d particles", i, len(s.Particles))
		}
	}
}

func TestRecordIsReproducible(t *testing.T) {
	data := t.TempDir()
	a := record(t, data)
	b := record(t, data)

	st := storage.New(data)
	fa, err := st.LoadFrames(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := st.LoadFrames(b)
	if err != nil {
		t.Fatal(err)
	}
	last := len(fa) - 1
	for i := range fa[last].Particles {
		if fa[last].Particles[i] != fb[last].Particles[i] {
			t.Fatalf("particle %d differs between runs with the same seed", i)
		}
	}
}

func TestListPlotExport(t *testing.T) {
	data := t.TempDir()
	id := record(t, data)

	out, err := execute(t, "list", "--data", data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, id) {
		t.Errorf("list output missing run id:\n%s", out)
	}

	out, err = execute(t, "plot", id, "--data", data, "--particle", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "particle: 3 of 8") || !strings.Contains(out, "samples: 4") {
		t.Errorf("unexpected plot output:\n%s", out)
	}

	if _, err := execute(t, "plot", id, "--data", data, "--particle", "99"); err == nil {
		t.Error("expected error for out of range particle")
	}

	out, err = execute(t, "export", id, "--data", data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"id": "`+id+`"`) {
		t.Errorf("unexpected export output:\n%s", out)
	}
}

func TestExportSVG(t *testing.T) {
	data := t.TempDir()
	id := record(t, data, "--theme", "light")

	out, err := execute(t, "export-svg", id, "--data", data, "--frame", "10")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out, "<circle"); got != 8 {
		t.Errorf("expected 8 circles, got %d", got)
	}
	if !strings.Contains(out, `fill-opacity="0.1"`) {
		t.Error("light run should export with alpha 0.1")
	}

	if _, err := execute(t, "export-svg", id, "--data", data, "--frame", "3"); err == nil {
		t.Error("expected error for a frame that was not recorded")
	}

	path := filepath.Join(t.TempDir(), "frame.svg")
	if _, err := execute(t, "export-svg", id, "--data", data, "-o", path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "<?xml") {
		t.Error("svg file not written")
	}
}

func TestMissingRun(t *testing.T) {
	_, err := execute(t, "export", "nope", "--data", t.TempDir())
	if !errors.Is(err, storage.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestUnknownPreset(t *testing.T) {
	_, err := execute(t, "record", "--data", t.TempDir(), "--preset", "nope", "--frames", "1")
	if !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %s", name)
		}
	}
}

func TestInitConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field.toml")
	if _, err := execute(t, "init-config", path, "--preset", "calm", "--count", "12"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles.Count != 12 || cfg.Particles.SpeedX != config.Presets["calm"].SpeedX {
		t.Errorf("unexpected config %+v", cfg.Particles)
	}

	data := filepath.Join(dir, "data")
	id := record(t, data, "--config", path)
	meta, err := storage.New(data).Load(id)
	if err != nil {
		t.Fatal(err)
	}
	// --count on the command line still wins over the file
	if meta.Count != 8 {
		t.Errorf("expected flag override to 8 particles, got %d", meta.Count)
	}
}

func TestRecordRestoresStoredTheme(t *testing.T) {
	data := t.TempDir()
	if err := os.WriteFile(filepath.Join(data, "theme.yaml"), []byte("theme: dark\n"), 0644); err != nil {
		t.Fatal(err)
	}
	id := record(t, data)
	meta, err := storage.New(data).Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Theme != "dark" {
		t.Errorf("expected stored dark theme, got %s", meta.Theme)
	}
}

func TestRecordEnsemble(t *testing.T) {
	data := t.TempDir()
	out, err := execute(t, "record", "--data", data, "--seed", "10", "--frames", "6", "--every", "3",
		"--width", "100", "--height", "100", "--count", "4", "--runs", "3")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out, "run id: "); got != 3 {
		t.Fatalf("expected 3 runs, got %d:\n%s", got, out)
	}
	for _, s := range []string{"seed: 10", "seed: 11", "seed: 12"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}

	runs, err := storage.New(data).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 stored runs, got %d", len(runs))
	}
}

func TestRecordRejectsZeroFrames(t *testing.T) {
	if _, err := execute(t, "record", "--data", t.TempDir(), "--frames", "0"); err == nil {
		t.Error("expected error for zero frames")
	}
}
