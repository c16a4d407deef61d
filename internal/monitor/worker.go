package monitor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-monitor/internal/model"
	"github.com/ytget/yt-monitor/internal/platform"
	"github.com/ytget/yt-monitor/internal/source"
)

// Defaults for the polling loop
const (
	DefaultPollInterval = time.Hour
	DefaultTargetDelay  = time.Second
	DefaultFetchTimeout = 60 * time.Second
	DefaultRetryBackoff = 3 * time.Second
	DefaultMaxAttempts  = 3
	// MinSleep is the floor for the jittered sleep between sweeps
	MinSleep = 60 * time.Second
)

// Options tune the polling loop
type Options struct {
	PollInterval time.Duration
	Jitter       time.Duration
	TargetDelay  time.Duration
	FetchTimeout time.Duration
	RetryBackoff time.Duration
	MaxAttempts  int
}

// DefaultOptions returns the standard loop settings
func DefaultOptions() Options {
	return Options{
		PollInterval: DefaultPollInterval,
		TargetDelay:  DefaultTargetDelay,
		FetchTimeout: DefaultFetchTimeout,
		RetryBackoff: DefaultRetryBackoff,
		MaxAttempts:  DefaultMaxAttempts,
	}
}

// TargetResult is the outcome of one target within a sweep
type TargetResult struct {
	Target  string // configured key
	URL     string // canonical URL actually fetched
	Reading model.Reading
	Video   model.Video // entry after the reading was recorded
	Err     error
}

// OK reports whether the target was updated
func (r TargetResult) OK() bool {
	return r.Err == nil
}

// SweepResult summarizes one pass over all targets
type SweepResult struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Targets   []TargetResult
	Succeeded int
	Failed    int
}

// Worker polls targets and feeds the history store
type Worker struct {
	targets []string
	fetcher source.Fetcher
	store   Store
	opts    Options
	logger  zerolog.Logger

	randFloat func() float64
	now       func() time.Time

	state    atomic.Pointer[model.WorkerState]
	onUpdate func(model.WorkerState) // callback for UI updates
}

// NewWorker creates a worker for targets. Zero option fields take defaults.
func NewWorker(targets []string, fetcher source.Fetcher, store Store, opts Options, logger zerolog.Logger) *Worker {
	def := DefaultOptions()
	if opts.PollInterval <= 0 {
		opts.PollInterval = def.PollInterval
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = def.FetchTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.Jitter < 0 {
		opts.Jitter = 0
	}
	if opts.TargetDelay < 0 {
		opts.TargetDelay = 0
	}
	if opts.RetryBackoff < 0 {
		opts.RetryBackoff = 0
	}

	w := &Worker{
		targets:   append([]string(nil), targets...),
		fetcher:   fetcher,
		store:     store,
		opts:      opts,
		logger:    logger.With().Str("component", "monitor").Logger(),
		randFloat: rand.Float64,
		now:       time.Now,
	}
	w.state.Store(&model.WorkerState{Status: model.WorkerStatusIdle})
	return w
}

// SetUpdateCallback sets the callback invoked on every state change.
// It must be set before Run and is called from the worker goroutine.
func (w *Worker) SetUpdateCallback(callback func(model.WorkerState)) {
	w.onUpdate = callback
}

// State returns the latest worker state without locking
func (w *Worker) State() model.WorkerState {
	return *w.state.Load()
}

// Run sweeps, saves and sleeps until ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	defer w.updateState(func(s *model.WorkerState) {
		s.Status = model.WorkerStatusStopped
		s.NextSweepAt = time.Time{}
	})

	w.logger.Info().Int("targets", len(w.targets)).Msg("Worker started")
	for {
		result := w.SweepOnce(ctx)
		if ctx.Err() != nil {
			w.logger.Info().Str("sweep", result.ID).Msg("Worker stopped")
			return
		}

		if err := w.store.Save(); err != nil {
			w.logger.Error().Err(err).Str("sweep", result.ID).Msg("Failed to save history")
		}

		delay := NextSleep(w.opts.PollInterval, w.opts.Jitter, w.randFloat)
		next := w.now().Add(delay)
		w.updateState(func(s *model.WorkerState) {
			s.Status = model.WorkerStatusSleeping
			s.NextSweepAt = next
		})
		w.logger.Info().
			Str("sweep", result.ID).
			Dur("sleep", delay).
			Time("next", next).
			Msg("Sleeping until next sweep")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			w.logger.Info().Msg("Worker stopped")
			return
		}
	}
}

// SweepOnce fetches every target once and records the readings. A sweep that
// reaches the last target is committed to the store; one cut short by ctx is
// not. It does not persist; Run saves after each sweep.
func (w *Worker) SweepOnce(ctx context.Context) SweepResult {
	result := SweepResult{
		ID:        uuid.NewString(),
		StartedAt: w.now(),
		Targets:   make([]TargetResult, 0, len(w.targets)),
	}
	log := w.logger.With().Str("sweep", result.ID).Logger()

	w.updateState(func(s *model.WorkerState) {
		s.Status = model.WorkerStatusSweeping
		s.SweepID = result.ID
		s.NextSweepAt = time.Time{}
	})
	log.Info().Int("targets", len(w.targets)).Msg("Sweep started")

	for i, target := range w.targets {
		if ctx.Err() != nil {
			break
		}

		tr := w.processTarget(ctx, log, target)
		result.Targets = append(result.Targets, tr)
		if tr.OK() {
			result.Succeeded++
		} else {
			result.Failed++
		}

		if i < len(w.targets)-1 && w.opts.TargetDelay > 0 {
			select {
			case <-time.After(w.opts.TargetDelay):
			case <-ctx.Done():
			}
		}
	}

	if ctx.Err() == nil {
		w.store.Commit()
	}

	result.Duration = w.now().Sub(result.StartedAt)
	finished := w.now()
	w.updateState(func(s *model.WorkerState) {
		s.LastSweepAt = finished
		s.Succeeded = result.Succeeded
		s.Failed = result.Failed
	})
	log.Info().
		Int("ok", result.Succeeded).
		Int("failed", result.Failed).
		Dur("took", result.Duration).
		Msg("Sweep finished")
	return result
}

func (w *Worker) processTarget(ctx context.Context, log zerolog.Logger, target string) TargetResult {
	url := platform.NormalizeURL(target)
	tr := TargetResult{Target: target, URL: url}

	reading, err := w.fetchWithRetry(ctx, log, url)
	if err != nil {
		tr.Err = err
		log.Warn().Err(err).Str("target", target).Msg("Skipping target, keeping previous data")
		return tr
	}

	tr.Reading = reading
	tr.Video = w.store.RecordReading(target, reading.Title, reading.Views)
	if reading.HasSubscribers() {
		w.store.UpdateSubscribers(reading.Subscribers)
	}
	log.Debug().
		Str("target", target).
		Int64("views", reading.Views).
		Msg("Reading recorded")
	return tr
}

// fetchWithRetry attempts the fetch up to MaxAttempts times with a fixed backoff
func (w *Worker) fetchWithRetry(ctx context.Context, log zerolog.Logger, url string) (model.Reading, error) {
	var lastErr error

	for attempt := 0; attempt < w.opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(w.opts.RetryBackoff):
			case <-ctx.Done():
				return model.Reading{}, ctx.Err()
			}

			log.Debug().Str("url", url).Int("attempt", attempt+1).Msg("Retrying fetch")
		}

		attemptCtx, cancel := context.WithTimeout(ctx, w.opts.FetchTimeout)
		reading, err := w.fetcher.Fetch(attemptCtx, url)
		cancel()
		if err == nil {
			return reading, nil
		}

		lastErr = err
		log.Warn().Err(err).Str("url", url).Int("attempt", attempt+1).Msg("Fetch attempt failed")

		if ctx.Err() != nil {
			return model.Reading{}, ctx.Err()
		}
	}

	return model.Reading{}, fmt.Errorf("gave up after %d attempts: %w", w.opts.MaxAttempts, lastErr)
}

func (w *Worker) updateState(mutate func(*model.WorkerState)) {
	next := *w.state.Load()
	mutate(&next)
	w.state.Store(&next)

	if w.onUpdate != nil {
		w.onUpdate(next)
	}
}

// NextSleep returns base shifted by a uniform offset in [-jitter, +jitter],
// never less than MinSleep. randFloat must return values in [0, 1).
func NextSleep(base, jitter time.Duration, randFloat func() float64) time.Duration {
	d := base
	if jitter > 0 {
		offset := (randFloat()*2 - 1) * float64(jitter)
		d += time.Duration(offset)
	}
	if d < MinSleep {
		d = MinSleep
	}
	return d
}
