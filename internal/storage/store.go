package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/clothsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
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

type RunMetadata struct {
	ID            string             `json:"id"`
	Scene         string             `json:"scene"`
	Preset        string             `json:"preset,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Ticks         int                `json:"ticks"`
	Dt            float64            `json:"dt"`
	Sweeps        int                `json:"sweeps"`
	TearTolerance float64            `json:"tear_tolerance"`
	Gravity       [2]float64         `json:"gravity"`
	Particles     int                `json:"particles"`
	Constraints   int                `json:"constraints"`
	Active        int                `json:"active"`
	Tears         []sim.Tear         `json:"tears"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Record copies the result-derived fields into m.
func (m *RunMetadata) Record(result *sim.Result) {
	m.Ticks = result.Ticks
	m.Particles = len(result.Final)
	m.Constraints = result.Total
	m.Active = result.Active
	m.Tears = result.Tears
	m.Metrics = result.Metrics
}

// Save writes meta and the result's metric series under a new run id. The
// id, timestamp and result-derived fields of meta are filled in.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Scene, now.UnixNano())
	meta.Timestamp = now
	meta.Record(result)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeSeries(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"tick"}, names...)); err != nil {
		return err
	}

	for i := 0; i < result.Ticks; i++ {
		row := []string{strconv.Itoa(i)}
		for _, name := range names {
			val := 0.0
			if i < len(result.Series[name]) {
				val = result.Series[name][i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSeries reads the per-tick metric series of a run, keyed by metric
// name, together with the names in column order.
func (s *Store) LoadSeries(runID string) ([]string, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return nil, map[string][]float64{}, nil
	}

	names := records[0][1:]
	series := make(map[string][]float64, len(names))
	for _, name := range names {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		for j, name := range names {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: column %s: %w", runID, name, err)
			}
			series[name] = append(series[name], val)
		}
	}

	return names, series, nil
}
