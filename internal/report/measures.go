// Package report renders benchmark measurements as a spreadsheet and as a
// console table.
package report

import (
	"time"

	"github.com/pkg/errors"
)

// Timing sample names accepted by the report.
const (
	MeasureGenerate         = "Test Generating JSON"
	MeasureIterateIterative = "Test Iterate Iteratively"
	MeasureIterateRecursive = "Test Iterate Recursively"
	MeasureDeserialize      = "Test Deserialize JSON"
	MeasureSerialize        = "Test Serialize JSON"
)

// ErrUnknownMeasure is returned for a timing sample whose name is not one
// of the Measure constants.
var ErrUnknownMeasure = errors.New("unknown measure")

type measureRow struct {
	name  string
	title string
}

// measureRows is the fixed order of timing rows in every report.
var measureRows = []measureRow{
	{MeasureGenerate, "Generating JSON"},
	{MeasureIterateIterative, "Iterating JSON Iteratively - BFS"},
	{MeasureIterateRecursive, "Iterating JSON Recursively - DFS"},
	{MeasureDeserialize, "Deserializing JSON"},
	{MeasureSerialize, "Serializing JSON"},
}

// Measures maps timing sample names to durations.
type Measures map[string]time.Duration

// Validate returns ErrUnknownMeasure, wrapped with the offending name, if
// any sample name is not recognized.
func (m Measures) Validate() error {
	for name := range m {
		if !knownMeasure(name) {
			return errors.Wrapf(ErrUnknownMeasure, "invalid test type %q", name)
		}
	}
	return nil
}

func knownMeasure(name string) bool {
	for _, r := range measureRows {
		if r.name == name {
			return true
		}
	}
	return false
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
