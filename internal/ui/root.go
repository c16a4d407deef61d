package ui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-monitor/internal/chart"
	"github.com/ytget/yt-monitor/internal/config"
	"github.com/ytget/yt-monitor/internal/model"
)

// SnapshotSource provides the current published history snapshot
type SnapshotSource interface {
	Snapshot() *model.Snapshot
}

// StateSource provides the current worker state
type StateSource interface {
	State() model.WorkerState
}

// Options describe what the dashboard shows
type Options struct {
	Targets   []string
	MaxPoints int
	Scale     chart.Scale
	Colors    config.Colors
	Locale    string
	Title     string // window title; localized app title when empty
}

// RootUI represents the main dashboard window
type RootUI struct {
	app    fyne.App
	window fyne.Window
	store  SnapshotSource
	worker StateSource
	opts   Options
	logger zerolog.Logger
	now    func() time.Time

	settings     *config.Settings
	localization *Localization
	formatter    *model.NumberFormatter

	header    *Header
	videoList *VideoList
	chart     *ChartWidget

	// last rendered inputs, to skip redundant redraws at frame rate
	lastSnapshot *model.Snapshot
	lastState    model.WorkerState
	lastClock    string
}

// NewRootUI creates and initializes the dashboard
func NewRootUI(app fyne.App, window fyne.Window, store SnapshotSource, worker StateSource, opts Options, logger zerolog.Logger) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization(opts.Locale)
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		store:        store,
		worker:       worker,
		opts:         opts,
		logger:       logger.With().Str("component", "ui").Logger(),
		now:          time.Now,
		settings:     settings,
		localization: localization,
		formatter:    model.NewNumberFormatter(opts.Locale),
	}

	app.Settings().SetTheme(NewCompactTheme(opts.Colors))
	window.SetTitle(ui.windowTitle())
	if logo, err := LoadLogoResource(); err == nil {
		window.SetIcon(logo)
	}

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.header = NewHeader(ui.opts.Colors, ui.localization)
	ui.videoList = NewVideoList(ui.opts.Targets, ui.opts.Colors, ui.formatter, ui.logger)
	ui.chart = NewChartWidget(ui.opts.Colors, ui.opts.MaxPoints, ui.opts.Scale)
	ui.applySettings()

	// Layout: header on top, list and chart share the rest
	body := container.NewVSplit(ui.videoList.Container(), container.NewPadded(ui.chart))
	body.SetOffset(0.5)

	ui.window.SetContent(container.NewBorder(ui.header, nil, nil, nil, body))
	ui.logger.Debug().Int("targets", len(ui.opts.Targets)).Msg("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	exportItem := fyne.NewMenuItem(ui.localization.GetText(KeyExportChart), ui.onExportChart)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), exportItem, settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.windowTitle())
	ui.chart.SetAxisLabels(ui.localization.GetText(KeyAxisTime), ui.axisViewsLabel())
	ui.lastClock = "" // force header redraw
	ui.Refresh()
}

func (ui *RootUI) windowTitle() string {
	if ui.opts.Title != "" {
		return ui.opts.Title
	}
	return ui.localization.GetText(KeyAppTitle)
}

func (ui *RootUI) axisViewsLabel() string {
	if ui.opts.Scale == chart.ScaleGlobal {
		return ui.localization.GetText(KeyAxisViewsGlobal)
	}
	return ui.localization.GetText(KeyAxisViewsLocal)
}

// applySettings pushes user preferences into the widgets
func (ui *RootUI) applySettings() {
	ui.chart.SetMarkers(ui.settings.GetShowMarkers(), ui.settings.GetMarkerRadius())
	ui.chart.SetAxisLabels(ui.localization.GetText(KeyAxisTime), ui.axisViewsLabel())
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.applySettings()
		ui.refreshUITexts()
		ui.createMenu()
		dialog.ShowInformation(ui.localization.GetText(KeySettings), ui.localization.GetText(KeySettingsSaved), ui.window)
	})
}

// Refresh renders one frame from the current snapshot and worker state.
// It must run on the UI goroutine.
func (ui *RootUI) Refresh() {
	now := ui.now()
	snap := ui.store.Snapshot()
	state := ui.worker.State()

	clock := now.Format(ClockFormat)
	snapChanged := snap != ui.lastSnapshot
	if clock != ui.lastClock || state != ui.lastState || snapChanged {
		ui.header.Update(now, state, snap.Subscribers)
		ui.lastClock = clock
		ui.lastState = state
	}

	if snapChanged {
		ui.videoList.SetSnapshot(snap)
		ui.chart.SetHistories(snap.Histories(ui.opts.Targets))
		ui.lastSnapshot = snap
	}
}

// StartFrameLoop schedules Refresh at FramesPerSecond until ctx is done
func (ui *RootUI) StartFrameLoop(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(FrameInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fyne.Do(ui.Refresh)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// WriteChartPNG renders the current snapshot chart as PNG to w
func (ui *RootUI) WriteChartPNG(w io.Writer) error {
	names, histories := chart.FromSnapshot(ui.store.Snapshot(), ui.opts.Targets)
	return chart.RenderPNG(w, chart.ExportInput{
		Names:      names,
		Histories:  histories,
		LineColors: ui.opts.Colors.LineColors,
		Background: ui.opts.Colors.ChartBg,
		Text:       ui.opts.Colors.TextPrimary,
		MaxPoints:  ui.opts.MaxPoints,
		Scale:      ui.opts.Scale,
		Title:      ui.windowTitle(),
	})
}

// onExportChart asks for a destination and writes the chart PNG there
func (ui *RootUI) onExportChart() {
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()

		if err := ui.WriteChartPNG(wc); err != nil {
			ui.logger.Error().Err(err).Str("path", wc.URI().Path()).Msg("Chart export failed")
			if errors.Is(err, chart.ErrNoSeries) {
				dialog.ShowInformation(ui.localization.GetText(KeyExportChart), ui.localization.GetText(KeyNoChartData), ui.window)
				return
			}
			dialog.ShowError(errors.New(ui.localization.GetText(KeyExportFailed)+": "+err.Error()), ui.window)
			return
		}

		ui.settings.SetExportDirectory(filepath.Dir(wc.URI().Path()))
		ui.logger.Info().Str("path", wc.URI().Path()).Msg("Chart exported")
		dialog.ShowInformation(ui.localization.GetText(KeyExportChart), ui.localization.GetText(KeyExportDone), ui.window)
	}, ui.window)

	fs.SetFileName(ExportFileName)
	if lister, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetExportDirectory())); err == nil {
		fs.SetLocation(lister)
	}
	fs.Show()
}
