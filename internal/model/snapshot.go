package model

import "time"

// Snapshot is the complete state of all videos plus the shared subscriber value.
// A published Snapshot must not be modified; writers build a new one instead.
type Snapshot struct {
	Videos      map[string]Video `json:"videos"`
	Subscribers string           `json:"subs"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Videos:      make(map[string]Video),
		Subscribers: DefaultSubscribers,
	}
}

// Clone returns a copy whose Videos map can be modified freely.
// History slices are shared; Video values never modify them in place.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Videos:      make(map[string]Video, len(s.Videos)),
		Subscribers: s.Subscribers,
		UpdatedAt:   s.UpdatedAt,
	}
	for key, video := range s.Videos {
		out.Videos[key] = video
	}
	return out
}

// Video returns the entry for key
func (s *Snapshot) Video(key string) (Video, bool) {
	v, ok := s.Videos[key]
	return v, ok
}

// VideoOrPlaceholder returns the entry for key or a loading placeholder
func (s *Snapshot) VideoOrPlaceholder(key string) Video {
	if v, ok := s.Videos[key]; ok {
		return v
	}
	return NewVideo()
}

// Histories returns the history of each key in order, empty for unknown keys
func (s *Snapshot) Histories(keys []string) [][]int64 {
	out := make([][]int64, len(keys))
	for i, key := range keys {
		out[i] = s.Videos[key].History
	}
	return out
}

// Reading is one successful fetch of a video page
type Reading struct {
	Title       string
	Views       int64
	Subscribers string // empty when the page did not expose it
}

// HasSubscribers reports whether the reading carries a subscriber count
func (r Reading) HasSubscribers() bool {
	return r.Subscribers != ""
}
