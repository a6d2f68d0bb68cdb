package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// Store persists run metadata as JSON and trajectories as CSV under a
// base directory, one subdirectory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the JSON-serialized scalar summary of one run.
type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	G          float64            `json:"g"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	FinalTime  float64            `json:"final_time"`
	StepsTaken int                `json:"steps_taken"`
	N          int                `json:"n"`
	Metrics    map[string]float64 `json:"metrics"`
}

// TrajectorySample is one recorded instant of a run: the full particle
// array at a given time.
type TrajectorySample struct {
	Time      float64
	Particles []dynamo.Particle
}

// Save writes run metadata and a long-format particle trajectory CSV
// (one row per particle per sample, so the column count doesn't depend
// on N) under a fresh run directory, and returns its ID.
func (s *Store) Save(scenario string, seed int64, sim *dynamo.Simulation, trajectory []TrajectorySample, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	status := sim.Status()
	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenario,
		Timestamp:  time.Now(),
		Seed:       seed,
		Dt:         status.Dt,
		G:          sim.G,
		Duration:   status.Time,
		Integrator: status.Integrator,
		FinalTime:  status.Time,
		StepsTaken: status.StepsTaken,
		N:          status.N,
		Metrics:    metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeTrajectoryCSV(filepath.Join(runDir, "trajectory.csv"), trajectory); err != nil {
		return "", err
	}

	return runID, nil
}

func writeTrajectoryCSV(path string, trajectory []TrajectorySample) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "hash", "name", "mass", "x", "y", "z", "vx", "vy", "vz"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, sample := range trajectory {
		tstr := strconv.FormatFloat(sample.Time, 'f', 9, 64)
		for _, p := range sample.Particles {
			row := []string{
				tstr,
				strconv.FormatUint(p.Hash, 10),
				p.Name,
				strconv.FormatFloat(p.Mass, 'g', -1, 64),
				strconv.FormatFloat(p.Pos[0], 'g', -1, 64),
				strconv.FormatFloat(p.Pos[1], 'g', -1, 64),
				strconv.FormatFloat(p.Pos[2], 'g', -1, 64),
				strconv.FormatFloat(p.Vel[0], 'g', -1, 64),
				strconv.FormatFloat(p.Vel[1], 'g', -1, 64),
				strconv.FormatFloat(p.Vel[2], 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// List returns the metadata for every run under the base directory,
// skipping any directory whose metadata.json is missing or malformed.
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory parses a run's trajectory.csv back into samples,
// grouping consecutive rows that share a time value.
func (s *Store) LoadTrajectory(runID string) ([]TrajectorySample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	var samples []TrajectorySample
	var cur *TrajectorySample

	for _, row := range records[1:] {
		if len(row) < 10 {
			continue
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			continue
		}
		hash, _ := strconv.ParseUint(row[1], 10, 64)
		mass, _ := strconv.ParseFloat(row[3], 64)
		x, _ := strconv.ParseFloat(row[4], 64)
		y, _ := strconv.ParseFloat(row[5], 64)
		z, _ := strconv.ParseFloat(row[6], 64)
		vx, _ := strconv.ParseFloat(row[7], 64)
		vy, _ := strconv.ParseFloat(row[8], 64)
		vz, _ := strconv.ParseFloat(row[9], 64)

		p := dynamo.Particle{
			Mass: mass, Hash: hash, Name: row[2],
			Pos: [3]float64{x, y, z},
			Vel: [3]float64{vx, vy, vz},
		}

		if cur == nil || cur.Time != t {
			if cur != nil {
				samples = append(samples, *cur)
			}
			cur = &TrajectorySample{Time: t}
		}
		cur.Particles = append(cur.Particles, p)
	}
	if cur != nil {
		samples = append(samples, *cur)
	}

	return samples, nil
}
