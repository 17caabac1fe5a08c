package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/driftfield/internal/field"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Preset    string             `json:"preset,omitempty"`
	Count     int                `json:"count"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Frames    int                `json:"frames"`
	Every     int                `json:"every"`
	Theme     string             `json:"theme"`
	Color     string             `json:"color"`
	Alpha     float64            `json:"alpha"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes meta and the recorded snapshots under a new run directory and
// returns the run ID. An empty meta.ID is replaced with a fresh UUID.
func (s *Store) Save(meta RunMetadata, snaps []field.Snapshot) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	// metadata goes last: List only shows runs whose frames are complete
	if err := writeFrames(filepath.Join(runDir, framesFile), snaps); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("write frames: %w", err)
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFrames(path string, snaps []field.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "index", "x", "y", "vx", "vy", "radius"}); err != nil {
		f.Close()
		return err
	}
	for _, snap := range snaps {
		frame := strconv.Itoa(snap.Frame)
		for i, p := range snap.Particles {
			row := []string{
				frame,
				strconv.Itoa(i),
				formatFloat(p.X),
				formatFloat(p.Y),
				formatFloat(p.VX),
				formatFloat(p.VY),
				formatFloat(p.Radius),
			}
			if err := w.Write(row); err != nil {
				f.Close()
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns all readable runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the recorded snapshots of a run in frame order.
func (s *Store) LoadFrames(runID string) ([]field.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 7
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read frames for %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []field.Snapshot{}, nil
	}

	snaps := make([]field.Snapshot, 0)
	for line, record := range records[1:] {
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("frames.csv line %d: %w", line+2, err)
		}
		vals := make([]float64, 5)
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[j+2], 64); err != nil {
				return nil, fmt.Errorf("frames.csv line %d: %w", line+2, err)
			}
		}
		if len(snaps) == 0 || snaps[len(snaps)-1].Frame != frame {
			snaps = append(snaps, field.Snapshot{Frame: frame, Particles: make([]field.Particle, 0)})
		}
		last := &snaps[len(snaps)-1]
		last.Particles = append(last.Particles, field.Particle{
			X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3], Radius: vals[4],
		})
	}
	return snaps, nil
}

// Series extracts the X and Y track of one particle across snapshots.
func Series(snaps []field.Snapshot, index int) (xs, ys []float64, err error) {
	xs = make([]float64, 0, len(snaps))
	ys = make([]float64, 0, len(snaps))
	for _, snap := range snaps {
		if index < 0 || index >= len(snap.Particles) {
			return nil, nil, fmt.Errorf("particle %d not in frame %d (%d particles)", index, snap.Frame, len(snap.Particles))
		}
		p := snap.Particles[index]
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	return xs, ys, nil
}
