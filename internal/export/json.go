package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/bonsai/internal/bonsai"
	"github.com/san-kum/bonsai/internal/sim"
)

type ExportData struct {
	Seed       uint64             `json:"seed"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Frames     int                `json:"frames"`
	Appearance bonsai.Appearance  `json:"appearance"`
	Metrics    map[string]float64 `json:"metrics"`
	Commands   []bonsai.Command   `json:"commands"`
}

// NewExportData describes a finished run. The result should have been
// recorded for Commands to be filled.
func NewExportData(result *sim.Result) ExportData {
	screen := result.Tree.Screen()
	return ExportData{
		Seed:       result.Seed,
		Width:      screen.Width,
		Height:     screen.Height,
		Frames:     result.Frames,
		Appearance: result.Tree.Appearance(),
		Metrics:    result.Metrics,
		Commands:   result.Commands,
	}
}

func ExportJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
