package transcribe

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sagarm04/Sublyze/internal/domain"
	"github.com/Sagarm04/Sublyze/internal/jobs"
	"github.com/Sagarm04/Sublyze/internal/language"
)

// fakeASR simulates the external transcription capability.
type fakeASR struct {
	transcribe func(ctx context.Context, asset domain.MediaAsset, locale language.Locale) (string, error)
}

// Transcribe delegates to injected behavior.
func (f *fakeASR) Transcribe(ctx context.Context, asset domain.MediaAsset, locale language.Locale) (string, error) {
	if f.transcribe == nil {
		return "", nil
	}
	return f.transcribe(ctx, asset, locale)
}

// fakeReleaser records release calls.
type fakeReleaser struct {
	mu       sync.Mutex
	released []string
}

// Release records the asset id.
func (f *fakeReleaser) Release(asset domain.MediaAsset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, asset.ID)
}

// count returns the number of release calls.
func (f *fakeReleaser) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.released)
}

// quietLogger returns a logger that discards output.
func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testAsset returns a staged asset fixture.
func testAsset() domain.MediaAsset {
	return domain.MediaAsset{ID: "asset-1", Path: "/staging/a.mp4", MIMEType: "video/mp4", DurationSeconds: 90}
}

// englishLocale resolves the default locale.
func englishLocale(t *testing.T) language.Locale {
	t.Helper()
	loc, err := language.NewRegistry().Lookup("en")
	if err != nil {
		t.Fatalf("lookup en: %v", err)
	}
	return loc
}

// TestPipelineRunSuccess checks the happy path, stage order, and cleanup.
func TestPipelineRunSuccess(t *testing.T) {
	asr := &fakeASR{
		transcribe: func(ctx context.Context, asset domain.MediaAsset, locale language.Locale) (string, error) {
			if locale.Code != "en" {
				t.Fatalf("locale = %q, want en", locale.Code)
			}
			return "Hi there. How are you? Great.", nil
		},
	}
	releaser := &fakeReleaser{}
	tracker := jobs.NewTracker()
	pipeline := NewPipeline(asr, releaser, tracker, time.Minute, quietLogger())

	var stages []string
	result, err := pipeline.Run(context.Background(), Request{
		Asset:   testAsset(),
		Locale:  englishLocale(t),
		OnStage: func(stage string) { stages = append(stages, stage) },
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Transcript != "Hi there. How are you? Great." {
		t.Fatalf("transcript = %q", result.Transcript)
	}
	if result.Language != "en" {
		t.Fatalf("language = %q, want en", result.Language)
	}
	if result.Job.Status != domain.JobStatusDone {
		t.Fatalf("job status = %s, want done", result.Job.Status)
	}
	if len(stages) != 2 || stages[0] != "transcribing" || stages[1] != "cleanup" {
		t.Fatalf("stages = %v", stages)
	}
	if releaser.count() != 1 {
		t.Fatalf("release calls = %d, want 1", releaser.count())
	}
	if _, active := tracker.Active("asset-1"); active {
		t.Fatal("tracker slot should be released")
	}
}

// TestPipelineRunReleasesOnProviderFailure checks cleanup on the error path.
func TestPipelineRunReleasesOnProviderFailure(t *testing.T) {
	providerErr := errors.New("provider unreachable")
	asr := &fakeASR{
		transcribe: func(context.Context, domain.MediaAsset, language.Locale) (string, error) {
			return "", providerErr
		},
	}
	releaser := &fakeReleaser{}
	pipeline := NewPipeline(asr, releaser, jobs.NewTracker(), time.Minute, quietLogger())

	_, err := pipeline.Run(context.Background(), Request{Asset: testAsset(), Locale: englishLocale(t)})
	if err == nil {
		t.Fatal("expected error")
	}

	var pErr *PipelineError
	if !errors.As(err, &pErr) {
		t.Fatalf("error type = %T, want *PipelineError", err)
	}
	if pErr.Stage != "transcribing" {
		t.Fatalf("stage = %s, want transcribing", pErr.Stage)
	}
	if !errors.Is(err, providerErr) {
		t.Fatal("underlying provider error should be preserved")
	}
	if releaser.count() != 1 {
		t.Fatalf("release calls = %d, want exactly 1", releaser.count())
	}
}

// TestPipelineRejectsConcurrentDuplicate checks the same asset cannot run
// twice at once and that the loser performs no provider call.
func TestPipelineRejectsConcurrentDuplicate(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	asr := &fakeASR{
		transcribe: func(ctx context.Context, asset domain.MediaAsset, locale language.Locale) (string, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			close(started)
			<-release
			return "done.", nil
		},
	}
	releaser := &fakeReleaser{}
	pipeline := NewPipeline(asr, releaser, jobs.NewTracker(), time.Minute, quietLogger())

	req := Request{Asset: testAsset(), Locale: englishLocale(t)}

	firstErr := make(chan error, 1)
	go func() {
		_, err := pipeline.Run(context.Background(), req)
		firstErr <- err
	}()

	<-started
	_, err := pipeline.Run(context.Background(), req)
	if !errors.Is(err, jobs.ErrTranscriptionInProgress) {
		t.Fatalf("duplicate error = %v, want ErrTranscriptionInProgress", err)
	}

	close(release)
	if err := <-firstErr; err != nil {
		t.Fatalf("first run error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("provider calls = %d, want 1", calls)
	}
}

// TestPipelineAppliesTimeout checks the bounded deadline around the call.
func TestPipelineAppliesTimeout(t *testing.T) {
	asr := &fakeASR{
		transcribe: func(ctx context.Context, asset domain.MediaAsset, locale language.Locale) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	pipeline := NewPipeline(asr, &fakeReleaser{}, jobs.NewTracker(), 10*time.Millisecond, quietLogger())

	_, err := pipeline.Run(context.Background(), Request{Asset: testAsset(), Locale: englishLocale(t)})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want deadline exceeded", err)
	}
}
