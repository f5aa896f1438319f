package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sagarm04/Sublyze/internal/domain"
	"github.com/Sagarm04/Sublyze/internal/jobs"
	"github.com/Sagarm04/Sublyze/internal/language"
)

// SpeechRecognizer is the external ASR capability consumed by the pipeline.
type SpeechRecognizer interface {
	Transcribe(ctx context.Context, asset domain.MediaAsset, locale language.Locale) (string, error)
}

// Releaser deletes a staged media asset.
type Releaser interface {
	Release(asset domain.MediaAsset)
}

// Request contains the staged asset and execution callbacks for one run.
type Request struct {
	Asset   domain.MediaAsset
	Locale  language.Locale
	OnStage func(stage string)
}

// Result carries the transcript produced by a successful run.
type Result struct {
	Job        domain.Job
	Transcript string
	Language   string
}

// PipelineError is a stage-aware error wrapping the underlying failure.
type PipelineError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error formats pipeline failures for logs.
func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Pipeline drives a staged upload through the ASR call with an in-flight
// guard, a bounded timeout, and guaranteed cleanup of the staged file.
type Pipeline struct {
	asr     SpeechRecognizer
	store   Releaser
	tracker *jobs.Tracker
	timeout time.Duration
	log     *logrus.Logger
}

// NewPipeline constructs the orchestration pipeline. A non-positive timeout
// disables the explicit deadline around the ASR call.
func NewPipeline(asr SpeechRecognizer, store Releaser, tracker *jobs.Tracker, timeout time.Duration, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		asr:     asr,
		store:   store,
		tracker: tracker,
		timeout: timeout,
		log:     log,
	}
}

// Run executes one transcription: claim the asset, call the provider, and
// release the staged file on every exit path. The pipeline never retries;
// ASR calls are costly and not safe to repeat blindly.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	job, err := p.tracker.Begin(req.Asset.ID)
	if err != nil {
		return Result{}, err
	}
	defer p.tracker.Finish(req.Asset.ID)

	// Exactly one delete attempt per run, regardless of outcome.
	defer p.store.Release(req.Asset)

	emitStage(req.OnStage, "transcribing")
	_ = p.tracker.Transition(req.Asset.ID, domain.JobStatusTranscribing)

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	transcript, err := p.asr.Transcribe(callCtx, req.Asset, req.Locale)
	if err != nil {
		_ = p.tracker.Transition(req.Asset.ID, domain.JobStatusFailed)
		p.log.WithFields(logrus.Fields{
			"jobId":   job.ID,
			"assetId": req.Asset.ID,
			"locale":  req.Locale.Code,
		}).WithError(err).Error("transcription failed")

		emitStage(req.OnStage, "cleanup")
		return Result{}, &PipelineError{
			Stage:   "transcribing",
			Message: "speech-to-text call failed",
			Err:     err,
		}
	}

	_ = p.tracker.Transition(req.Asset.ID, domain.JobStatusDone)
	emitStage(req.OnStage, "cleanup")

	job.Status = domain.JobStatusDone
	return Result{
		Job:        job,
		Transcript: transcript,
		Language:   req.Locale.Code,
	}, nil
}

// emitStage forwards stage updates when a callback is configured.
func emitStage(cb func(stage string), stage string) {
	if cb != nil {
		cb(stage)
	}
}
