package monitor

import (
	"context"

	"github.com/ytget/yt-monitor/internal/model"
)

// Store is the part of the history store the worker writes to
type Store interface {
	RecordReading(key, title string, views int64) model.Video
	UpdateSubscribers(text string)
	Commit()
	Save() error
}

// Poller is the worker surface used by the CLI commands and the dashboard
type Poller interface {
	SetUpdateCallback(func(model.WorkerState))
	Run(ctx context.Context)
	SweepOnce(ctx context.Context) SweepResult
	State() model.WorkerState
}

var _ Poller = (*Worker)(nil)
