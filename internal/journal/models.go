package journal

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a run.
type Status string

const (
	StatusPending      Status = "pending"
	StatusInitializing Status = "initializing"
	StatusReconciling  Status = "reconciling"
	StatusCommitting   Status = "committing"
	StatusPackaging    Status = "packaging"
	StatusPublishing   Status = "publishing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// Outcome classifies how a completed run ended.
type Outcome string

const (
	OutcomeNone        Outcome = ""
	OutcomeNoop        Outcome = "no-op"
	OutcomeInitialized Outcome = "initialized"
	OutcomePublished   Outcome = "published"
	OutcomeDryRun      Outcome = "dry-run"
	OutcomeFailed      Outcome = "failed"
)

// Trigger values for a run.
const (
	TriggerWatch  = "watch"
	TriggerManual = "manual"
)

// Run is one journal row.
type Run struct {
	ID           string
	Trigger      string
	DryRun       bool
	Status       Status
	Outcome      Outcome
	Version      string
	VersionCode  int64
	ReleaseURL   string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetFailed marks the run failed with a trimmed error message.
func (r *Run) SetFailed(message string) {
	r.Status = StatusFailed
	r.Outcome = OutcomeFailed
	r.ErrorMessage = strings.TrimSpace(message)
}

// SetCompleted marks the run completed with the given outcome.
func (r *Run) SetCompleted(outcome Outcome) {
	r.Status = StatusCompleted
	r.Outcome = outcome
	r.ErrorMessage = ""
}
