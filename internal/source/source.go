package source

import (
	"context"
	"errors"

	"github.com/ytget/yt-monitor/internal/model"
)

// Sentinel errors
var (
	// ErrParse means the page was fetched but title or views could not be read
	ErrParse = errors.New("failed to parse video page")
	// ErrStatus means the server answered with a non-success HTTP status
	ErrStatus = errors.New("unexpected HTTP status")
)

// Fetcher retrieves one reading for a canonical video URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (model.Reading, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, url string) (model.Reading, error)

// Fetch calls f(ctx, url)
func (f FetcherFunc) Fetch(ctx context.Context, url string) (model.Reading, error) {
	return f(ctx, url)
}
