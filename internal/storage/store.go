package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/predprey/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrBadStates   = errors.New("storage: malformed states file")
)

// CSVHeader is the first row of every states file.
var CSVHeader = []string{"time", "prey", "predator"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type Populations struct {
	Prey     float64 `json:"prey"`
	Predator float64 `json:"predator"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Adaptive   bool               `json:"adaptive"`
	Dt         float64            `json:"dt"`
	Start      float64            `json:"start"`
	Stop       float64            `json:"stop"`
	Samples    int                `json:"samples"`
	InitState  Populations        `json:"init_state"`
	Params     map[string]float64 `json:"params"`
	Harvest    Populations        `json:"harvest,omitempty"`
	StepsTaken int                `json:"steps_taken"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata.json and states.csv and
// returns the new run ID. Metrics and step count are taken from result.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("storage: nil result")
	}
	if meta.Model == "" {
		meta.Model = "lotka_volterra"
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Model, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.StepsTaken = result.StepsTaken
	meta.Metrics = result.Metrics
	if len(result.Times) > 0 {
		meta.Samples = len(result.Times)
	}

	err := createFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = createFile(filepath.Join(runDir, statesFile), func(w io.Writer) error {
		return WriteCSV(w, result)
	})
	if err != nil {
		return "", err
	}

	return runID, nil
}

func createFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(f, write)
}

// writeAndClose runs write on wc and always closes it. A failed close is
// reported even when the write succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("close: %w", cerr))
	}
	return err
}

// WriteCSV writes the trajectory as time,prey,predator rows.
func WriteCSV(out io.Writer, result *dynamo.Result) error {
	w := csv.NewWriter(out)

	if err := w.Write(CSVHeader); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'g', -1, 64)}
		for j := 0; j < 2; j++ {
			val := 0.0
			if j < len(result.States[i]) {
				val = result.States[i][j]
			}
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns all runs, oldest first.
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

// Latest returns the ID of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", ErrRunNotFound
	}
	return runs[len(runs)-1].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadStates(runID string) ([]dynamo.State, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(in io.Reader) ([]dynamo.State, []float64, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(CSVHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadStates, err)
	}

	if len(records) < 2 {
		return []dynamo.State{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]dynamo.State, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		vals := make([]float64, len(records[i]))
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: line %d: %v", ErrBadStates, i+1, err)
			}
			vals[j] = v
		}
		times = append(times, vals[0])
		states = append(states, dynamo.State{vals[1], vals[2]})
	}

	return states, times, nil
}

// LoadResult rebuilds a trajectory with its recorded metrics.
func (s *Store) LoadResult(runID string) (*RunMetadata, *dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	states, times, err := s.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}

	metrics := meta.Metrics
	if metrics == nil {
		metrics = make(map[string]float64)
	}

	return meta, &dynamo.Result{
		States:     states,
		Times:      times,
		Metrics:    metrics,
		StepsTaken: meta.StepsTaken,
	}, nil
}
