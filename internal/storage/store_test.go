package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
)

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		States: []dynamo.State{
			{50, 10},
			{12.5, 31.25},
			{1.5e-23, 0.75},
		},
		Controls: []dynamo.Control{
			{0, 0}, {0, 0}, {0, 0},
		},
		Times:      []float64{0, 0.05005005005005005, 0.1001001001001001},
		StepsTaken: 7,
		Metrics: map[string]float64{
			"prey_peak": 50,
		},
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Integrator: "rk45",
		Controller: "none",
		Adaptive:   true,
		Dt:         0.01,
		Stop:       50,
		InitState:  Populations{Prey: 50, Predator: 10},
		Params:     map[string]float64{"alpha": 1, "beta": 1, "delta": 1, "gamma": 1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleMeta(), sampleResult())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "lotka_volterra_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "lotka_volterra", meta.Model)
	assert.Equal(t, "rk45", meta.Integrator)
	assert.Equal(t, 3, meta.Samples)
	assert.Equal(t, 7, meta.StepsTaken)
	assert.Equal(t, 50.0, meta.Metrics["prey_peak"])
	assert.Equal(t, 1.0, meta.Params["gamma"])

	states, times, err := st.LoadStates(runID)
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, sampleResult().Times, times)
	assert.Equal(t, dynamo.State{1.5e-23, 0.75}, states[2], "values round-trip without loss")
}

func TestStatesCSVHeader(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleMeta(), sampleResult())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, runID, "states.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,prey,predator", lines[0])
	assert.Equal(t, "0,50,10", lines[1])
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := st.Save(sampleMeta(), sampleResult())
	require.NoError(t, err)
	second, err := st.Save(sampleMeta(), sampleResult())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)

	latest, err := st.Latest()
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = st.Latest()
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestStoreLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("nope")
	assert.True(t, errors.Is(err, ErrRunNotFound))

	_, _, err = st.LoadStates("nope")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleMeta(), sampleResult())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, runID, "metadata.json"))
	assert.FileExists(t, filepath.Join(tmpDir, runID, "states.csv"))
}

func TestLoadResult(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleMeta(), sampleResult())
	require.NoError(t, err)

	meta, result, err := st.LoadResult(runID)
	require.NoError(t, err)
	assert.Equal(t, "none", meta.Controller)
	assert.Equal(t, []float64{50, 12.5, 1.5e-23}, result.Prey())
	assert.Equal(t, 7, result.StepsTaken)
	assert.Equal(t, 50.0, result.Metrics["prey_peak"])
}

func TestReadCSVMalformed(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("time,prey,predator\n0,abc,1\n"))
	assert.True(t, errors.Is(err, ErrBadStates))

	_, _, err = ReadCSV(strings.NewReader("time,prey,predator\n0,1\n"))
	assert.True(t, errors.Is(err, ErrBadStates))
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := sampleMeta()
	require.NoError(t, ExportJSON(&buf, &meta, sampleResult()))

	var got ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 3, got.Samples)
	assert.Equal(t, []float64{10, 31.25, 0.75}, got.Predator)
	assert.Equal(t, "rk45", got.Run.Integrator)
	assert.Len(t, got.Controls, 3)
}

func TestExportJSONWithoutMetadata(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, nil, sampleResult()))
	assert.NotContains(t, buf.String(), `"run"`)
}

func TestMetadataFromConfig(t *testing.T) {
	cfg := config.GetPreset("harvested")
	require.NotNil(t, cfg)

	meta := MetadataFromConfig(cfg)
	assert.Equal(t, "lotka_volterra", meta.Model)
	assert.Equal(t, "harvest", meta.Controller)
	assert.Equal(t, Populations{Prey: 50, Predator: 10}, meta.InitState)
	assert.Equal(t, Populations{Prey: 0.2, Predator: 0.1}, meta.Harvest)
	assert.Equal(t, 1.0, meta.Params["gamma"])
	assert.Equal(t, 1000, meta.Samples)

	plain := MetadataFromConfig(config.DefaultConfig())
	assert.Zero(t, plain.Harvest)
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	diskFull := errors.New("no space left on device")
	wc := &failingCloser{closeErr: diskFull}

	err := writeAndClose(wc, func(w io.Writer) error {
		return WriteCSV(w, sampleResult())
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, diskFull)
	assert.True(t, wc.closed)
	assert.True(t, strings.HasPrefix(wc.String(), "time,prey,predator"))
}

func TestWriteAndCloseKeepsWriteError(t *testing.T) {
	writeErr := errors.New("encode failed")
	wc := &failingCloser{}

	err := writeAndClose(wc, func(io.Writer) error { return writeErr })
	assert.ErrorIs(t, err, writeErr)
	assert.True(t, wc.closed, "file must be closed after a failed write")

	wc = &failingCloser{}
	assert.NoError(t, writeAndClose(wc, func(w io.Writer) error {
		_, err := w.Write([]byte("ok"))
		return err
	}))
}
