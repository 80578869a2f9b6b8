package bootstrap

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// StepOutcome is one executed step in a run report.
type StepOutcome struct {
	Host            string  `json:"host"`
	Step            string  `json:"step"`
	Command         string  `json:"command,omitempty"`
	ExitCode        int     `json:"exitCode"`
	DurationSeconds float64 `json:"durationSeconds"`
	Tolerated       bool    `json:"tolerated,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// Report captures the outcome of one bootstrap run. All methods are
// safe for concurrent use and for a nil receiver, so the runner can
// record unconditionally.
type Report struct {
	mu         sync.Mutex
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Steps      []StepOutcome `json:"steps"`
}

func NewReport() *Report {
	return &Report{}
}

func (r *Report) start() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StartedAt = time.Now()
}

func (r *Report) finish() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FinishedAt = time.Now()
}

func (r *Report) addStep(host string, step Step, result cm.CommandResult, err error) {
	if r == nil {
		return
	}

	outcome := StepOutcome{
		Host:            host,
		Step:            step.Name,
		Command:         result.Command,
		ExitCode:        result.ExitCode,
		DurationSeconds: result.Duration.Seconds(),
	}
	if err != nil {
		outcome.Error = err.Error()
		outcome.Tolerated = step.OnFailure == ContinueOnError
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Steps = append(r.Steps, outcome)
}

// WriteJSON renders the report for operators and CI jobs.
func (r *Report) WriteJSON(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
