package ui

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-monitor/internal/chart"
	"github.com/ytget/yt-monitor/internal/config"
	"github.com/ytget/yt-monitor/internal/model"
)

type fakeStore struct {
	snap *model.Snapshot
}

func (f *fakeStore) Snapshot() *model.Snapshot { return f.snap }

type fakeWorker struct {
	state model.WorkerState
}

func (f *fakeWorker) State() model.WorkerState { return f.state }

func testColors(t *testing.T) config.Colors {
	t.Helper()
	colors, err := config.DefaultPalette().Resolve()
	require.NoError(t, err)
	return colors
}

func newTestRoot(t *testing.T, snap *model.Snapshot, state model.WorkerState) (*RootUI, *fakeStore, *fakeWorker) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	store := &fakeStore{snap: snap}
	worker := &fakeWorker{state: state}
	ui := NewRootUI(app, window, store, worker, Options{
		Targets:   []string{"a", "b"},
		MaxPoints: 5,
		Scale:     chart.ScaleLocal,
		Colors:    testColors(t),
		Locale:    "en",
	}, zerolog.Nop())
	ui.now = func() time.Time { return time.Date(2024, 5, 1, 10, 11, 12, 0, time.UTC) }
	return ui, store, worker
}

func snapshotWith(subs string, videos map[string]model.Video) *model.Snapshot {
	snap := model.NewSnapshot()
	snap.Subscribers = subs
	for k, v := range videos {
		snap.Videos[k] = v
	}
	return snap
}

func TestRootUI_RefreshHeader(t *testing.T) {
	snap := snapshotWith("1.2M", nil)
	ui, store, worker := newTestRoot(t, snap, model.WorkerState{Status: model.WorkerStatusSweeping})

	ui.Refresh()
	assert.Equal(t, "1.2M", ui.header.subsValue.Text)
	assert.Equal(t, "10:11:12", ui.header.clock.Text)
	assert.Equal(t, "Updating", ui.header.status.Text)

	worker.state = model.WorkerState{Status: model.WorkerStatusStopped}
	store.snap = snapshotWith("1.3M", nil)
	ui.Refresh()
	assert.Equal(t, "1.3M", ui.header.subsValue.Text)
	assert.Equal(t, "Stopped", ui.header.status.Text)
}

func TestRootUI_RefreshChart(t *testing.T) {
	video := model.NewVideo().WithReading("A", 10, 5).WithReading("A", 20, 5).WithReading("A", 15, 5)
	ui, _, _ := newTestRoot(t, snapshotWith("1", map[string]model.Video{"a": video}), model.WorkerState{})

	ui.chart.Resize(fyne.NewSize(400, 300))
	ui.Refresh()

	r := test.TempWidgetRenderer(t, ui.chart).(*chartRenderer)
	r.Layout(fyne.NewSize(400, 300))
	assert.Equal(t, 2, r.visibleLines())
	assert.Equal(t, 3, r.visibleCircles())
}

func TestChartWidget_MarkersOffAndShrink(t *testing.T) {
	test.NewApp()
	c := NewChartWidget(testColors(t), 5, chart.ScaleGlobal)
	c.Resize(fyne.NewSize(400, 300))
	r := test.TempWidgetRenderer(t, c).(*chartRenderer)

	c.SetHistories([][]int64{{1, 2, 3, 4}, {5, 6}})
	r.Layout(c.Size())
	assert.Equal(t, 4, r.visibleLines())
	assert.Equal(t, 6, r.visibleCircles())

	c.SetMarkers(false, 3)
	c.SetHistories([][]int64{{1, 2}})
	r.Layout(c.Size())
	assert.Equal(t, 1, r.visibleLines(), "pooled lines beyond the current series are hidden")
	assert.Equal(t, 0, r.visibleCircles())
}

func TestVideoRow_Update(t *testing.T) {
	test.NewApp()
	colors := testColors(t)
	row := NewVideoRow(colors)

	video := model.NewVideo().WithReading("Concert", 100, 5).WithReading("Concert", 150, 5)
	row.Update(2, video, model.NewNumberFormatter("it"))

	assert.Equal(t, "Concert", row.titleText.Text)
	assert.Equal(t, "150", row.viewsText.Text)
	assert.Equal(t, "+50.00%", row.deltaText.Text)
	assert.Equal(t, colors.LineColor(2), row.marker.FillColor)
	assert.Equal(t, colors.ViewsGreen, row.deltaText.Color)

	row.Update(0, model.NewVideo(), model.NewNumberFormatter("en"))
	assert.Equal(t, model.LoadingTitle, row.titleText.Text)
	assert.Equal(t, model.NoDataPlaceholder, row.deltaText.Text)
	assert.Equal(t, colors.TextSecondary, row.deltaText.Color)
}

func TestVideoRow_MinSizeWithinBounds(t *testing.T) {
	test.NewApp()
	row := NewVideoRow(testColors(t))
	row.Update(0, model.NewVideo().WithReading("A title long enough to need the full row width", 1234567, 5), model.NewNumberFormatter("en"))

	size := test.TempWidgetRenderer(t, row).MinSize()
	assert.GreaterOrEqual(t, size.Width, RowMinWidth)
	assert.GreaterOrEqual(t, size.Height, RowMinHeight)
	assert.LessOrEqual(t, size.Height, RowMaxHeight)
}

func TestStatusText(t *testing.T) {
	l := NewLocalization("en")
	next := time.Date(2024, 5, 1, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state model.WorkerState
		want  string
	}{
		{name: "idle", state: model.WorkerState{}, want: "Starting"},
		{name: "sweeping", state: model.WorkerState{Status: model.WorkerStatusSweeping}, want: "Updating"},
		{
			name:  "sleeping with next",
			state: model.WorkerState{Status: model.WorkerStatusSleeping, NextSweepAt: next},
			want:  "Waiting · next 14:05",
		},
		{
			name:  "sleeping with failures",
			state: model.WorkerState{Status: model.WorkerStatusSleeping, NextSweepAt: next, Failed: 2},
			want:  "Waiting · next 14:05 · 2 failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusText(tt.state, l))
		})
	}
}

func TestStatusColor(t *testing.T) {
	colors := testColors(t)

	assert.Equal(t, colors.SubsBlue, statusColor(model.WorkerState{Status: model.WorkerStatusSweeping}, colors))
	assert.Equal(t, colors.SubsBlue, statusColor(model.WorkerState{Status: model.WorkerStatusSweeping, Failed: 2}, colors))
	assert.Equal(t, colors.ViewsGreen, statusColor(model.WorkerState{Status: model.WorkerStatusSleeping}, colors))
	assert.Equal(t, warningColor, statusColor(model.WorkerState{Status: model.WorkerStatusSleeping, Failed: 1}, colors))
	assert.Equal(t, colors.TextSecondary, statusColor(model.WorkerState{Status: model.WorkerStatusStopped}, colors))
}

func TestRootUI_WriteChartPNG(t *testing.T) {
	video := model.NewVideo().WithReading("A", 10, 5).WithReading("A", 20, 5)
	ui, store, _ := newTestRoot(t, snapshotWith("1", map[string]model.Video{"a": video}), model.WorkerState{})

	var buf bytes.Buffer
	require.NoError(t, ui.WriteChartPNG(&buf))
	_, err := png.Decode(&buf)
	require.NoError(t, err)

	store.snap = model.NewSnapshot()
	buf.Reset()
	assert.ErrorIs(t, ui.WriteChartPNG(&buf), chart.ErrNoSeries)
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, _, _ := newTestRoot(t, model.NewSnapshot(), model.WorkerState{})
	ui.Refresh()

	ui.onLanguageChange(LangItalian)

	assert.Equal(t, LangItalian, ui.settings.GetLanguage())
	assert.Equal(t, "ISCRITTI:", ui.header.subsLabel.Text)
	assert.Equal(t, "VISUALIZZAZIONI (scala relativa)", ui.chart.axisViews)
}

func TestLocalization(t *testing.T) {
	l := NewLocalization("it-IT")
	assert.Equal(t, LangEnglish, l.GetCurrentLanguage())

	l.SetLanguage(LangSystem)
	assert.Equal(t, LangItalian, l.GetCurrentLanguage())
	assert.Equal(t, "ISCRITTI:", l.GetText(KeySubscribers))

	l.SetLanguage("xx")
	assert.Equal(t, LangItalian, l.GetCurrentLanguage(), "unknown language is ignored")

	l.SetLanguage(LangRussian)
	assert.Equal(t, "ПОДПИСЧИКИ:", l.GetText(KeySubscribers))
	assert.Equal(t, "missing_key", l.GetText("missing_key"))

	assert.Len(t, l.GetAvailableLanguages(), 3)
}

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization("en")
	for lang := range l.GetAvailableLanguages() {
		assert.Len(t, l.texts[lang], len(l.texts[LangEnglish]), lang)
	}
}

func TestSettingsDialog_Save(t *testing.T) {
	app := test.NewApp()
	window := test.NewWindow(nil)
	defer window.Close()

	settings := config.NewSettings(app)
	saved := false
	sd := NewSettingsDialog(settings, NewLocalization("en"), window, func() { saved = true })
	sd.loadCurrentSettings()

	sd.languageSelect.SetSelected("Русский")
	sd.markersCheck.SetChecked(false)
	sd.radiusEntry.SetText("42")
	sd.exportDirEntry.SetText("/tmp/charts")
	sd.onSave(true)

	assert.True(t, saved)
	assert.Equal(t, LangRussian, settings.GetLanguage())
	assert.False(t, settings.GetShowMarkers())
	assert.Equal(t, config.MaxMarkerRadius, settings.GetMarkerRadius())
	assert.Equal(t, "/tmp/charts", settings.GetExportDirectory())
}

func TestSettingsDialog_Cancel(t *testing.T) {
	app := test.NewApp()
	window := test.NewWindow(nil)
	defer window.Close()

	settings := config.NewSettings(app)
	sd := NewSettingsDialog(settings, NewLocalization("en"), window, nil)
	sd.loadCurrentSettings()
	sd.languageSelect.SetSelected("Italiano")
	sd.onSave(false)

	assert.Equal(t, config.DefaultLanguage, settings.GetLanguage())
}
