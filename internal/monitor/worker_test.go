package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-monitor/internal/history"
	"github.com/ytget/yt-monitor/internal/model"
	"github.com/ytget/yt-monitor/internal/source"
)

var errUnavailable = errors.New("unavailable")

// fakeFetcher serves fixed readings per canonical URL and counts calls
type fakeFetcher struct {
	mu       sync.Mutex
	readings map[string]model.Reading
	calls    map[string]int
}

func newFakeFetcher(readings map[string]model.Reading) *fakeFetcher {
	return &fakeFetcher{readings: readings, calls: make(map[string]int)}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (model.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	r, ok := f.readings[url]
	if !ok {
		return model.Reading{}, errUnavailable
	}
	return r, nil
}

func (f *fakeFetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func fastOptions() Options {
	return Options{
		PollInterval: time.Hour,
		FetchTimeout: time.Second,
		RetryBackoff: time.Millisecond,
		MaxAttempts:  3,
	}
}

func newStore(t *testing.T) *history.Store {
	t.Helper()
	return history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10, zerolog.Nop())
}

func TestSweepOnce_MiddleTargetFails(t *testing.T) {
	targets := []string{
		"https://youtu.be/AAA",
		"https://www.youtube.com/shorts/BBB",
		"https://www.youtube.com/watch?v=CCC&si=track",
	}
	fetcher := newFakeFetcher(map[string]model.Reading{
		"https://www.youtube.com/watch?v=AAA": {Title: "A", Views: 100, Subscribers: "5K"},
		"https://www.youtube.com/watch?v=CCC": {Title: "C", Views: 300},
	})

	store := newStore(t)
	store.RecordReading(targets[1], "B old", 42)

	w := NewWorker(targets, fetcher, store, fastOptions(), zerolog.Nop())
	result := w.SweepOnce(context.Background())

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Targets, 3)
	assert.True(t, result.Targets[0].OK())
	assert.ErrorIs(t, result.Targets[1].Err, errUnavailable)
	assert.True(t, result.Targets[2].OK())
	assert.Equal(t, 3, fetcher.Calls("https://www.youtube.com/watch?v=BBB"), "failing target uses every attempt")
	assert.Equal(t, 1, fetcher.Calls("https://www.youtube.com/watch?v=AAA"))

	snap := store.Snapshot()
	assert.Equal(t, int64(100), snap.Videos[targets[0]].Views)
	assert.Equal(t, int64(300), snap.Videos[targets[2]].Views)
	assert.Equal(t, "B old", snap.Videos[targets[1]].Title)
	assert.Equal(t, int64(42), snap.Videos[targets[1]].Views)
	assert.Equal(t, "5K", snap.Subscribers)

	require.NoError(t, store.Save())
	reloaded := history.NewStore(store.Path(), 10, zerolog.Nop()).Load()
	assert.Equal(t, int64(100), reloaded.Videos[targets[0]].Views)
	assert.Equal(t, int64(300), reloaded.Videos[targets[2]].Views)
	assert.Equal(t, int64(42), reloaded.Videos[targets[1]].Views)
}

func TestSweepOnce_CommitsOnlyCompletedSweeps(t *testing.T) {
	targets := []string{"https://youtu.be/AAA", "https://youtu.be/BBB"}
	store := newStore(t)

	complete := newFakeFetcher(map[string]model.Reading{
		"https://www.youtube.com/watch?v=AAA": {Title: "A", Views: 100},
		"https://www.youtube.com/watch?v=BBB": {Title: "B", Views: 200},
	})
	NewWorker(targets, complete, store, fastOptions(), zerolog.Nop()).SweepOnce(context.Background())

	// The second sweep is interrupted after its first target.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	interrupted := source.FetcherFunc(func(_ context.Context, url string) (model.Reading, error) {
		cancel()
		return model.Reading{Title: "A", Views: 150}, nil
	})
	NewWorker(targets, interrupted, store, fastOptions(), zerolog.Nop()).SweepOnce(ctx)
	assert.Equal(t, int64(150), store.Snapshot().Videos[targets[0]].Views)

	require.NoError(t, store.SaveCommitted())
	reloaded := history.NewStore(store.Path(), 10, zerolog.Nop()).Load()
	assert.Equal(t, []int64{100}, reloaded.Videos[targets[0]].History)
	assert.Equal(t, []int64{200}, reloaded.Videos[targets[1]].History)
}

func TestSweepOnce_SubscribersKeptWhenAbsent(t *testing.T) {
	fetcher := newFakeFetcher(map[string]model.Reading{
		"https://www.youtube.com/watch?v=AAA": {Title: "A", Views: 1},
	})
	store := newStore(t)
	store.UpdateSubscribers("9K")

	w := NewWorker([]string{"https://youtu.be/AAA"}, fetcher, store, fastOptions(), zerolog.Nop())
	w.SweepOnce(context.Background())

	assert.Equal(t, "9K", store.Snapshot().Subscribers)
}

func TestFetchWithRetry_RecoversOnSecondAttempt(t *testing.T) {
	attempts := 0
	fetcher := source.FetcherFunc(func(ctx context.Context, url string) (model.Reading, error) {
		attempts++
		if attempts == 1 {
			return model.Reading{}, errUnavailable
		}
		return model.Reading{Title: "T", Views: 7}, nil
	})

	w := NewWorker(nil, fetcher, newStore(t), fastOptions(), zerolog.Nop())
	reading, err := w.fetchWithRetry(context.Background(), zerolog.Nop(), "u")

	require.NoError(t, err)
	assert.Equal(t, int64(7), reading.Views)
	assert.Equal(t, 2, attempts)
}

func TestFetchWithRetry_AttemptTimeout(t *testing.T) {
	fetcher := source.FetcherFunc(func(ctx context.Context, url string) (model.Reading, error) {
		<-ctx.Done()
		return model.Reading{}, ctx.Err()
	})
	opts := fastOptions()
	opts.FetchTimeout = 5 * time.Millisecond
	opts.MaxAttempts = 2

	w := NewWorker(nil, fetcher, newStore(t), opts, zerolog.Nop())
	_, err := w.fetchWithRetry(context.Background(), zerolog.Nop(), "u")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSweepOnce_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := source.FetcherFunc(func(_ context.Context, url string) (model.Reading, error) {
		cancel()
		return model.Reading{Title: "T", Views: 1}, nil
	})

	w := NewWorker([]string{"a", "b", "c"}, fetcher, newStore(t), fastOptions(), zerolog.Nop())
	result := w.SweepOnce(ctx)

	assert.Len(t, result.Targets, 1)
}

func TestRun_SavesAndStops(t *testing.T) {
	fetcher := newFakeFetcher(map[string]model.Reading{
		"https://www.youtube.com/watch?v=AAA": {Title: "A", Views: 10},
	})
	store := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var statuses []model.WorkerStatus
	w := NewWorker([]string{"https://youtu.be/AAA"}, fetcher, store, fastOptions(), zerolog.Nop())
	w.SetUpdateCallback(func(s model.WorkerState) {
		mu.Lock()
		statuses = append(statuses, s.Status)
		mu.Unlock()
		if s.Status == model.WorkerStatusSleeping {
			cancel()
		}
	})

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	state := w.State()
	assert.Equal(t, model.WorkerStatusStopped, state.Status)
	assert.Equal(t, 1, state.Succeeded)
	assert.NotEmpty(t, state.SweepID)

	mu.Lock()
	assert.Contains(t, statuses, model.WorkerStatusSweeping)
	assert.Contains(t, statuses, model.WorkerStatusSleeping)
	mu.Unlock()

	reloaded := history.NewStore(store.Path(), 10, zerolog.Nop()).Load()
	assert.Equal(t, int64(10), reloaded.Videos["https://youtu.be/AAA"].Views)
}

func TestNewWorker_Defaults(t *testing.T) {
	w := NewWorker(nil, nil, nil, Options{}, zerolog.Nop())

	assert.Equal(t, DefaultPollInterval, w.opts.PollInterval)
	assert.Equal(t, DefaultFetchTimeout, w.opts.FetchTimeout)
	assert.Equal(t, DefaultMaxAttempts, w.opts.MaxAttempts)
	assert.Equal(t, model.WorkerStatusIdle, w.State().Status)
}

func TestNextSleep(t *testing.T) {
	tests := []struct {
		name   string
		base   time.Duration
		jitter time.Duration
		rnd    float64
		want   time.Duration
	}{
		{name: "no jitter", base: 10 * time.Minute, rnd: 0.9, want: 10 * time.Minute},
		{name: "lowest", base: 10 * time.Minute, jitter: time.Minute, rnd: 0, want: 9 * time.Minute},
		{name: "middle", base: 10 * time.Minute, jitter: time.Minute, rnd: 0.5, want: 10 * time.Minute},
		{name: "floor", base: 90 * time.Second, jitter: time.Minute, rnd: 0, want: MinSleep},
		{name: "base below floor", base: time.Second, want: MinSleep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSleep(tt.base, tt.jitter, func() float64 { return tt.rnd })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextSleep_WithinBounds(t *testing.T) {
	base, jitter := 30*time.Minute, 5*time.Minute
	w := NewWorker(nil, nil, nil, Options{}, zerolog.Nop())

	for i := 0; i < 1000; i++ {
		d := NextSleep(base, jitter, w.randFloat)
		require.GreaterOrEqual(t, d, base-jitter)
		require.LessOrEqual(t, d, base+jitter)
		require.GreaterOrEqual(t, d, MinSleep)
	}
}
