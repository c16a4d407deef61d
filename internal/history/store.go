package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/yt-monitor/internal/model"
	"github.com/ytget/yt-monitor/internal/platform"
)

// Store keeps the current snapshot and persists it to a JSON file
type Store struct {
	path      string
	maxPoints int
	logger    zerolog.Logger
	now       func() time.Time

	mu        sync.Mutex
	current   atomic.Pointer[model.Snapshot]
	committed *model.Snapshot // last complete state, guarded by mu
}

// NewStore creates a store backed by path holding at most maxPoints per video
func NewStore(path string, maxPoints int, logger zerolog.Logger) *Store {
	s := &Store{
		path:      path,
		maxPoints: maxPoints,
		logger:    logger.With().Str("component", "history").Logger(),
		now:       time.Now,
	}
	empty := model.NewSnapshot()
	s.current.Store(empty)
	s.committed = empty
	return s
}

// SetClock replaces the time source used for UpdatedAt
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Path returns the snapshot file path
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the current published snapshot. Callers must not modify it.
func (s *Store) Snapshot() *model.Snapshot {
	return s.current.Load()
}

// Load reads the snapshot file and publishes it. A missing or corrupt file
// yields an empty snapshot; the problem is logged, never returned.
func (s *Store) Load() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.readFile()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info().Str("path", s.path).Msg("No history file yet, starting empty")
		} else {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to load history, starting empty")
		}
		snap = model.NewSnapshot()
	}

	s.current.Store(snap)
	s.committed = snap
	return snap
}

func (s *Store) readFile() (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	if snap.Videos == nil {
		snap.Videos = make(map[string]model.Video)
	}
	if snap.Subscribers == "" {
		snap.Subscribers = model.DefaultSubscribers
	}
	for key, video := range snap.Videos {
		if video.History == nil {
			video.History = []int64{}
		}
		snap.Videos[key] = video.Trimmed(s.maxPoints)
	}
	return &snap, nil
}

// Save writes the current snapshot atomically: the previous file is
// replaced only once the new content is fully on disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(s.current.Load())
}

// Commit marks the current snapshot as complete, e.g. at the end of a sweep
func (s *Store) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = s.current.Load()
}

// SaveCommitted writes the snapshot marked by the last Commit (or Load),
// leaving out readings recorded since then
func (s *Store) SaveCommitted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(s.committed)
}

func (s *Store) write(snap *model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := platform.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// RecordReading applies one successful reading to the entry for key,
// creating it when needed
func (s *Store) RecordReading(key, title string, views int64) model.Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Load().Clone()
	video, ok := next.Videos[key]
	if !ok {
		video = model.NewVideo()
	}
	video = video.WithReading(title, views, s.maxPoints)
	next.Videos[key] = video
	next.UpdatedAt = s.now()

	s.current.Store(next)
	return video
}

// UpdateSubscribers overwrites the shared subscriber value
func (s *Store) UpdateSubscribers(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Load().Clone()
	next.Subscribers = text
	next.UpdatedAt = s.now()
	s.current.Store(next)
}

// EnsureVideos adds placeholder entries for keys that have none yet
func (s *Store) EnsureVideos(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	var next *model.Snapshot
	for _, key := range keys {
		if _, ok := cur.Videos[key]; ok {
			continue
		}
		if next == nil {
			next = cur.Clone()
		}
		next.Videos[key] = model.NewVideo()
	}
	if next != nil {
		s.current.Store(next)
	}
}
