package jobs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Sagarm04/Sublyze/internal/domain"
)

// ErrTranscriptionInProgress is returned when a second run is started for an
// asset whose first run has not settled. Duplicate concurrent runs would
// double provider billing and race on the staged file.
var ErrTranscriptionInProgress = errors.New("transcription already in progress for this media")

// ErrNoActiveJob is returned when a transition targets an idle asset.
var ErrNoActiveJob = errors.New("no active job for this media")

// Tracker enforces at most one in-flight transcription per media asset and
// validates job status transitions.
type Tracker struct {
	mu     sync.RWMutex
	active map[string]domain.Job
}

// NewTracker creates a tracker with no active jobs.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]domain.Job)}
}

// Begin claims the asset for a new run. A second Begin before Finish fails
// with ErrTranscriptionInProgress.
func (t *Tracker) Begin(assetID string) (domain.Job, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.active[assetID]; exists {
		return domain.Job{}, ErrTranscriptionInProgress
	}

	job := domain.Job{
		ID:      uuid.NewString(),
		AssetID: assetID,
		Status:  domain.JobStatusReceived,
	}
	t.active[assetID] = job
	return job, nil
}

// Transition validates and applies a status change for the asset's job.
func (t *Tracker) Transition(assetID string, status domain.JobStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, exists := t.active[assetID]
	if !exists {
		return ErrNoActiveJob
	}
	if job.Status == status {
		return nil
	}
	if !isValidTransition(job.Status, status) {
		return fmt.Errorf("invalid transition: %s -> %s", job.Status, status)
	}

	job.Status = status
	t.active[assetID] = job
	return nil
}

// Active returns a snapshot of the asset's current job, if any.
func (t *Tracker) Active(assetID string) (domain.Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	job, exists := t.active[assetID]
	return job, exists
}

// Finish releases the asset's slot so a later run may claim it.
func (t *Tracker) Finish(assetID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, assetID)
}

// isValidTransition enforces the allowed job state machine edges.
func isValidTransition(from, to domain.JobStatus) bool {
	switch from {
	case domain.JobStatusReceived:
		return to == domain.JobStatusTranscribing || to == domain.JobStatusFailed
	case domain.JobStatusTranscribing:
		return to == domain.JobStatusDone || to == domain.JobStatusFailed
	default:
		return false
	}
}
