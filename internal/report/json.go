package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/csskit"
)

// JSONReport is the structured JSON export schema. The analysis itself
// keeps its own field names; the envelope adds provenance.
type JSONReport struct {
	Version   string           `json:"version"`
	Timestamp string           `json:"timestamp"`
	Source    string           `json:"source,omitempty"`
	Analysis  *csskit.Analysis `json:"analysis"`
}

// WriteJSON writes the analysis as indented JSON.
func WriteJSON(w io.Writer, a *csskit.Analysis, source string) error {
	output := JSONReport{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Source:    source,
		Analysis:  a,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
