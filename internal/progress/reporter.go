package progress

import (
	"sync"
	"time"
)

// pendingCap is the highest percentage reported while the run is pending.
// The remaining span is reserved for the completion jump.
const pendingCap = 95

// statusPhrases cycle on their own interval while a run is pending.
var statusPhrases = []string{
	"Uploading video…",
	"Analyzing audio…",
	"Generating captions…",
	"Almost done…",
}

// Reporter simulates client-visible progress for a pending orchestration
// call. It carries no correctness weight: it never gates the call, and it is
// stopped as soon as the run settles.
type Reporter struct {
	bus            *Bus
	tickEvery      time.Duration
	phraseEvery    time.Duration
	completeWindow time.Duration
}

// NewReporter creates a reporter with the display cadence of the original
// UI: percent ticks every 60ms, phrases rotate every 1.2s, and the terminal
// state holds for 1.2s before resetting.
func NewReporter(bus *Bus) *Reporter {
	return &Reporter{
		bus:            bus,
		tickEvery:      60 * time.Millisecond,
		phraseEvery:    1200 * time.Millisecond,
		completeWindow: 1200 * time.Millisecond,
	}
}

// NewReporterWithCadence creates a reporter with custom intervals for tests.
func NewReporterWithCadence(bus *Bus, tickEvery, phraseEvery, completeWindow time.Duration) *Reporter {
	return &Reporter{
		bus:            bus,
		tickEvery:      tickEvery,
		phraseEvery:    phraseEvery,
		completeWindow: completeWindow,
	}
}

// Run is one live progress simulation.
type Run struct {
	reporter *Reporter
	jobID    string

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// Begin starts emitting progress and status events for a job until Finish.
func (r *Reporter) Begin(jobID string) *Run {
	run := &Run{
		reporter: r,
		jobID:    jobID,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go run.loop()
	return run
}

// loop drives the percent and phrase tickers until the run is stopped.
func (run *Run) loop() {
	defer close(run.done)

	r := run.reporter
	tick := time.NewTicker(r.tickEvery)
	defer tick.Stop()
	phrase := time.NewTicker(r.phraseEvery)
	defer phrase.Stop()

	percent := 0.0
	phraseIndex := 0
	r.bus.Publish(Event{JobID: run.jobID, Type: EventTypeStatus, Message: statusPhrases[0]})
	r.bus.Publish(Event{JobID: run.jobID, Type: EventTypeProgress, Percent: percent})

	for {
		select {
		case <-run.stop:
			return
		case <-tick.C:
			next := NextPercent(percent)
			if next != percent {
				percent = next
				r.bus.Publish(Event{JobID: run.jobID, Type: EventTypeProgress, Percent: percent})
			}
		case <-phrase.C:
			phraseIndex = (phraseIndex + 1) % len(statusPhrases)
			r.bus.Publish(Event{JobID: run.jobID, Type: EventTypeStatus, Message: statusPhrases[phraseIndex]})
		}
	}
}

// Finish stops the simulation, jumps to 100%, emits the terminal signal, and
// schedules the reset after the display window. Safe to call more than once.
func (run *Run) Finish() {
	run.once.Do(func() {
		close(run.stop)
		<-run.done

		r := run.reporter
		r.bus.Publish(Event{JobID: run.jobID, Type: EventTypeProgress, Percent: 100})
		r.bus.Publish(Event{JobID: run.jobID, Type: EventTypeComplete, Percent: 100, Message: "Complete!"})
		time.AfterFunc(r.completeWindow, func() {
			r.bus.Publish(Event{JobID: run.jobID, Type: EventTypeReset})
		})
	})
}

// NextPercent advances a pending percentage along the decreasing increment
// bands: fast below 60, slower below 80, slowest approaching the cap.
func NextPercent(current float64) float64 {
	if current >= pendingCap {
		return pendingCap
	}

	var increment float64
	switch {
	case current < 60:
		increment = 2.5
	case current < 80:
		increment = 1.2
	default:
		increment = 0.5
	}

	next := current + increment
	if next > pendingCap {
		return pendingCap
	}
	return next
}
