package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
)

// SummaryVersion is incremented when the format changes.
const SummaryVersion = 1

// SessionSummary holds the outcome of one completed or aborted session.
type SessionSummary struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Phase          string  `json:"phase"`
	Won            bool    `json:"won"`
	ElapsedSec     float64 `json:"elapsed_sec"`
	CoveragePct    float64 `json:"coverage_pct"`
	LiveCells      int     `json:"live_cells"`
	SaturatedCells int     `json:"saturated_cells"`

	Impacts      int `json:"impacts"`
	Emitted      int `json:"emitted"`
	Dropped      int `json:"dropped"`
	DepositTicks int `json:"deposit_ticks"`

	Intensity int    `json:"intensity"`
	Material  string `json:"material"`

	Ticks int32 `json:"ticks"`
}

// WriteJSON saves the summary to a file.
func (s SessionSummary) WriteJSON(path string) error {
	s.Version = SummaryVersion
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// LoadSummary reads a summary file back.
func LoadSummary(path string) (SessionSummary, error) {
	var s SessionSummary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading summary: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing summary: %w", err)
	}
	return s, nil
}
