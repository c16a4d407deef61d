package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-monitor/internal/chart"
	"github.com/ytget/yt-monitor/internal/config"
	"github.com/ytget/yt-monitor/internal/model"
	"github.com/ytget/yt-monitor/internal/monitor"
	"github.com/ytget/yt-monitor/internal/ui"
)

// AppID identifies the application for Fyne preferences storage
const AppID = "com.ytget.yt-monitor"

// workerOptions maps the static config onto the polling loop settings
func workerOptions(cfg *config.Config) monitor.Options {
	opts := monitor.DefaultOptions()
	opts.PollInterval = cfg.PollInterval()
	opts.Jitter = cfg.Jitter()
	opts.TargetDelay = cfg.TargetDelay()
	opts.FetchTimeout = cfg.FetchTimeout()
	return opts
}

// newPoller builds the polling worker for the prepared environment
func newPoller(env *environment) monitor.Poller {
	return monitor.NewWorker(env.targets, newFetcher(env.cfg, env.logger), env.store, workerOptions(env.cfg), env.logger)
}

// uiOptions maps the static config onto the dashboard settings
func uiOptions(cfg *config.Config, targets []string) (ui.Options, error) {
	scale, err := chart.ParseScale(string(cfg.ChartScale))
	if err != nil {
		return ui.Options{}, err
	}

	title := ""
	if cfg.Window.Title != config.DefaultWindowTitle {
		title = cfg.Window.Title
	}

	return ui.Options{
		Targets:   targets,
		MaxPoints: cfg.MaxHistoryPoints,
		Scale:     scale,
		Colors:    cfg.MustColors(),
		Locale:    cfg.Locale,
		Title:     title,
	}, nil
}

// runDashboard opens the window, runs the worker in the background and
// blocks until the window is closed or a termination signal arrives
func runDashboard(ctx context.Context, env *environment) error {
	uiOpts, err := uiOptions(env.cfg, env.targets)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	worker := newPoller(env)
	last := model.WorkerStatusIdle
	worker.SetUpdateCallback(func(state model.WorkerState) {
		if state.Status == last {
			return
		}
		last = state.Status
		env.logger.Debug().Str("status", state.Status.String()).Str("sweep", state.SweepID).Msg("Worker status changed")
	})

	a := app.NewWithID(AppID)
	window := a.NewWindow(env.cfg.Window.Title)
	window.Resize(fyne.NewSize(float32(env.cfg.Window.Width), float32(env.cfg.Window.Height)))

	root := ui.NewRootUI(a, window, env.store, worker, uiOpts, env.logger)
	root.StartFrameLoop(workerCtx)

	var workerDone sync.WaitGroup
	workerDone.Add(1)
	go func() {
		defer workerDone.Done()
		worker.Run(workerCtx)
	}()

	window.SetCloseIntercept(func() {
		env.logger.Info().Msg("Window closed")
		a.Quit()
	})

	uiDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			env.logger.Info().Msg("Termination signal received")
			fyne.Do(a.Quit)
		case <-uiDone:
		}
	}()

	window.ShowAndRun()
	close(uiDone)

	cancelWorker()
	workerDone.Wait()
	if err := env.store.SaveCommitted(); err != nil {
		env.logger.Error().Err(err).Str("path", env.store.Path()).Msg("Final history save failed")
		return nil
	}
	env.logger.Info().Str("path", env.store.Path()).Msg("History saved on exit")
	return nil
}
