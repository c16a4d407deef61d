package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// PlaylistLister returns the video ids of a playlist
type PlaylistLister interface {
	ListVideoIDs(ctx context.Context, playlistID string) ([]string, error)
}

// YTDLPLister lists playlist items through the ytdlp library
type YTDLPLister struct{}

// ListVideoIDs fetches every item of the playlist
func (YTDLPLister) ListVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.VideoID != "" {
			ids = append(ids, it.VideoID)
		}
	}
	return ids, nil
}

// PlaylistExpander replaces playlist targets with the videos they contain
type PlaylistExpander struct {
	lister  PlaylistLister
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPlaylistExpander creates an expander backed by lister
func NewPlaylistExpander(lister PlaylistLister, logger zerolog.Logger) *PlaylistExpander {
	return &PlaylistExpander{
		lister:  lister,
		timeout: DefaultPlaylistParseTimeout,
		logger:  logger,
	}
}

// SetTimeout sets the timeout for a single playlist listing
func (p *PlaylistExpander) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Expand returns targets with every playlist URL replaced, in place, by the
// canonical URLs of its videos. Duplicates keep their first position. A
// playlist that cannot be listed is dropped and logged.
func (p *PlaylistExpander) Expand(ctx context.Context, targets []string) []string {
	seen := make(map[string]bool, len(targets))
	out := make([]string, 0, len(targets))
	add := func(target string) {
		if seen[target] {
			return
		}
		seen[target] = true
		out = append(out, target)
	}

	for _, target := range targets {
		if !IsPlaylistURL(target) {
			add(target)
			continue
		}

		urls, err := p.expandOne(ctx, target)
		if err != nil {
			p.logger.Error().Err(err).Str("target", target).Msg("Skipping playlist target")
			continue
		}
		p.logger.Info().Str("target", target).Int("videos", len(urls)).Msg("Expanded playlist target")
		for _, u := range urls {
			add(u)
		}
	}
	return out
}

func (p *PlaylistExpander) expandOne(ctx context.Context, target string) ([]string, error) {
	playlistID, err := ExtractPlaylistID(target)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ids, err := p.lister.ListVideoIDs(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		urls = append(urls, CanonicalVideoURL(id))
	}
	return urls, nil
}
