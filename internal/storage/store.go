package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/san-kum/boxsim/internal/particles"
	"github.com/san-kum/boxsim/internal/sim"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
	runPrefix      = "box_"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Box         particles.Box      `json:"box"`
	Particles   int                `json:"particles"`
	Seed        int64              `json:"seed"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Elapsed     float64            `json:"elapsed"`
	Reason      string             `json:"reason"`
	Reflections int                `json:"reflections"`
	Frames      int                `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata and the recorded
// trajectory, and returns its ID. A failed save leaves no directory behind.
func (s *Store) Save(box particles.Box, count int, seed int64, duration float64, result *sim.Result) (string, error) {
	runID := runPrefix + uuid.NewString()[:8]
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Box:         box,
		Particles:   count,
		Seed:        seed,
		Duration:    duration,
		Steps:       result.Steps,
		Elapsed:     result.Elapsed,
		Reason:      string(result.Reason),
		Reflections: result.Reflections,
		Frames:      len(result.Trajectory),
		Metrics:     finiteMetrics(result.Metrics),
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result.Trajectory); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

// finiteMetrics drops values JSON cannot hold, such as the +Inf minimum
// separation of a single particle.
func finiteMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrajectory(path string, frames []particles.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(frames) > 0 {
		if err := WriteCSV(w, frames); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteCSV writes a header and one row per frame. Every frame must hold the
// same number of particles as the first.
func WriteCSV(w *csv.Writer, frames []particles.Frame) error {
	n := 0
	if len(frames) > 0 {
		n = frames[0].Len()
	}

	header := make([]string, 0, 1+2*n)
	header = append(header, "time")
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fr := range frames {
		if fr.Len() != n {
			return fmt.Errorf("frame at step %d has %d particles, want %d", fr.Step, fr.Len(), n)
		}
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(fr.Time))
		for i := 0; i < n; i++ {
			row = append(row,
				formatFloat(fr.X[i]),
				formatFloat(fr.Y[i]),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// formatFloat writes the shortest text that parses back to v exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns stored runs, newest first. Directories without readable
// metadata are skipped.
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
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), runPrefix) {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory reads positions back from trajectory.csv. Velocities are
// not stored, and Step holds the row index.
func (s *Store) LoadTrajectory(runID string) ([]particles.Frame, error) {
	f, err := os.Open(filepath.Join(s.Dir(runID), trajectoryFile))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if len(records) < 2 {
		return []particles.Frame{}, nil
	}

	n := (len(records[0]) - 1) / 2
	frames := make([]particles.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}

		fr := particles.Frame{
			Step: i,
			Time: vals[0],
			X:    make([]float64, n),
			Y:    make([]float64, n),
		}
		for k := 0; k < n; k++ {
			fr.X[k] = vals[1+2*k]
			fr.Y[k] = vals[2+2*k]
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

type exportFrame struct {
	Time float64   `json:"time"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

type exportData struct {
	RunMetadata
	Trajectory []exportFrame `json:"trajectory"`
}

// ExportJSON writes the metadata and trajectory of a run as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	data := exportData{
		RunMetadata: *meta,
		Trajectory:  make([]exportFrame, len(frames)),
	}
	for i, fr := range frames {
		data.Trajectory[i] = exportFrame{Time: fr.Time, X: fr.X, Y: fr.Y}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies the stored trajectory to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.Dir(runID), trajectoryFile))
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
