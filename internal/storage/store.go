package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/circsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

// Store archives finished runs under baseDir, one directory per run.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	UUID      string             `json:"uuid"`
	Name      string             `json:"name"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float32            `json:"dt"`
	Duration  float32            `json:"duration"`
	Samples   int                `json:"samples"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and series.csv for result and returns the run ID.
func (s *Store) Save(kind string, cfg dynamo.Config, params map[string]float64, result *dynamo.Result) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("%s_%d", result.Name, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", dynamo.OutputError(err)
	}

	meta := RunMetadata{
		ID:        runID,
		UUID:      uuid.New().String(),
		Name:      result.Name,
		Kind:      kind,
		Timestamp: ts,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Samples:   result.Series.Len(),
		Params:    params,
		Metrics:   sanitize(result.Metrics),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", dynamo.OutputError(err)
	}
	defer metaFile.Close()

	if err := ExportJSON(metaFile, meta); err != nil {
		return "", dynamo.OutputError(err)
	}

	sink, err := CreateCSV(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	for i := 0; i < result.Series.Len(); i++ {
		if err := sink.Record(result.Series.Times[i], result.Series.Values[i]); err != nil {
			sink.Close()
			return "", dynamo.OutputError(err)
		}
	}
	if err := sink.Close(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns archived runs, oldest first. Unreadable entries are skipped.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*dynamo.Series, error) {
	return ReadSeriesFile(filepath.Join(s.baseDir, runID, seriesFile))
}

// ExportJSON writes v as indented JSON.
func ExportJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// sanitize drops values JSON cannot encode.
func sanitize(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}
