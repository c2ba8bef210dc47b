package entities

import "time"

// Manifest records the outcome of one driver run. It is written to the
// distribution directory as manifest.json after a successful run.
type Manifest struct {
	RunID      string     `json:"run_id"`
	Builder    string     `json:"builder"`
	Binary     string     `json:"binary"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	Artifacts  []Artifact `json:"artifacts"`
}
