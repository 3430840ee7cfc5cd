package runlog

import (
	"time"

	"github.com/fbz-tec/skytrack/core/dataset"
	"github.com/google/uuid"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Kind groups units in the summary.
type Kind string

const (
	KindOverview Kind = "overview"
	KindChart    Kind = "chart"
	KindTimeline Kind = "timeline"
	KindExport   Kind = "export"
)

// UnitResult is the outcome of one report unit.
type UnitResult struct {
	Name     string        `yaml:"name"`
	Kind     Kind          `yaml:"kind"`
	Status   Status        `yaml:"status"`
	Message  string        `yaml:"message,omitempty"`
	Artifact string        `yaml:"artifact,omitempty"`
	Rows     int           `yaml:"rows"`
	Duration time.Duration `yaml:"duration"`
}

// Summary collects every unit of a run in execution order.
type Summary struct {
	RunID      string               `yaml:"run_id"`
	Source     string               `yaml:"source,omitempty"`
	StartedAt  time.Time            `yaml:"started_at"`
	FinishedAt time.Time            `yaml:"finished_at"`
	Units      []UnitResult         `yaml:"units"`
	Overview   []*dataset.ResultSet `yaml:"overview,omitempty"`
}

func NewSummary(source string) *Summary {
	return &Summary{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: time.Now(),
	}
}

func (s *Summary) Record(u UnitResult) {
	s.Units = append(s.Units, u)
}

// Finish stamps the end time.
func (s *Summary) Finish() {
	s.FinishedAt = time.Now()
}

func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Counts tallies units per status.
func (s *Summary) Counts() map[Status]int {
	out := map[Status]int{StatusOK: 0, StatusSkipped: 0, StatusFailed: 0}
	for _, u := range s.Units {
		out[u.Status]++
	}
	return out
}

// Failed reports whether any unit failed.
func (s *Summary) Failed() bool {
	return s.Counts()[StatusFailed] > 0
}

func (s *Summary) Unit(name string) (UnitResult, bool) {
	for _, u := range s.Units {
		if u.Name == name {
			return u, true
		}
	}
	return UnitResult{}, false
}

// Artifacts lists the files produced by successful units.
func (s *Summary) Artifacts() []string {
	var out []string
	for _, u := range s.Units {
		if u.Status == StatusOK && u.Artifact != "" {
			out = append(out, u.Artifact)
		}
	}
	return out
}
