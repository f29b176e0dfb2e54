package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/predprey/internal/dynamo"
)

type ExportData struct {
	Run      *RunMetadata       `json:"run,omitempty"`
	Samples  int                `json:"samples"`
	Times    []float64          `json:"times"`
	Prey     []float64          `json:"prey"`
	Predator []float64          `json:"predator"`
	Controls [][]float64        `json:"controls,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes the trajectory as indented JSON. meta may be nil.
func ExportJSON(w io.Writer, meta *RunMetadata, result *dynamo.Result) error {
	data := ExportData{
		Run:      meta,
		Samples:  len(result.Times),
		Times:    result.Times,
		Prey:     result.Prey(),
		Predator: result.Predator(),
		Metrics:  result.Metrics,
	}

	if len(result.Controls) > 0 {
		data.Controls = make([][]float64, len(result.Controls))
		for i, c := range result.Controls {
			data.Controls[i] = c
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
