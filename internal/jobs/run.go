// Package jobs tracks batch runs so the trigger surface can report a job id
// and coarse status back to the caller.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunRunning   RunStatus = "RUNNING"
	RunCompleted RunStatus = "COMPLETED"
	RunFailed    RunStatus = "FAILED"
)

// Run is one triggered batch execution.
type Run struct {
	ID         string     `json:"id"`
	Status     RunStatus  `json:"status"`
	DryRun     bool       `json:"dry_run"`
	InputKey   string     `json:"input_key"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Processed  int        `json:"processed"`
	Failed     int        `json:"failed"`
	Error      string     `json:"error,omitempty"`
}

func NewRun(dryRun bool, inputKey string) Run {
	return Run{
		ID:        uuid.NewString(),
		Status:    RunRunning,
		DryRun:    dryRun,
		InputKey:  inputKey,
		StartedAt: time.Now().UTC(),
	}
}

// Store persists run records. Get returns (nil, nil) for an unknown id.
type Store interface {
	Put(ctx context.Context, run Run) error
	Get(ctx context.Context, id string) (*Run, error)
}
