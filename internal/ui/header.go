package ui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-monitor/internal/config"
	"github.com/ytget/yt-monitor/internal/model"
)

var warningColor = color.NRGBA{R: 255, G: 193, B: 7, A: 255}

// Header shows the wall clock, the worker status and the subscriber count
type Header struct {
	widget.BaseWidget

	colors       config.Colors
	localization *Localization

	background *canvas.Rectangle
	title      *canvas.Text
	clock      *canvas.Text
	dot        *canvas.Circle
	status     *canvas.Text
	subsLabel  *canvas.Text
	subsValue  *canvas.Text
}

// NewHeader creates the dashboard header
func NewHeader(colors config.Colors, localization *Localization) *Header {
	h := &Header{
		colors:       colors,
		localization: localization,
	}
	h.ExtendBaseWidget(h)
	h.createUI()
	return h
}

func (h *Header) createUI() {
	h.background = canvas.NewRectangle(h.colors.PanelBg)

	h.title = canvas.NewText("", h.colors.TextSecondary)
	h.title.TextSize = HeaderTitleSize
	h.title.TextStyle = fyne.TextStyle{Bold: true}

	h.clock = canvas.NewText("", h.colors.TextSecondary)
	h.clock.TextStyle = fyne.TextStyle{Monospace: true}

	h.dot = canvas.NewCircle(h.colors.TextSecondary)
	h.status = canvas.NewText("", h.colors.TextSecondary)

	h.subsLabel = canvas.NewText("", h.colors.TextSecondary)
	h.subsLabel.TextSize = HeaderTitleSize
	h.subsLabel.TextStyle = fyne.TextStyle{Bold: true}

	h.subsValue = canvas.NewText(model.DefaultSubscribers, h.colors.SubsBlue)
	h.subsValue.TextSize = HeaderValueSize
	h.subsValue.TextStyle = fyne.TextStyle{Bold: true}

	h.refreshTexts()
}

// refreshTexts applies the current language to static labels
func (h *Header) refreshTexts() {
	h.title.Text = h.localization.GetText(KeyHeaderTitle)
	h.subsLabel.Text = h.localization.GetText(KeySubscribers)
}

// Update renders one frame worth of header data
func (h *Header) Update(now time.Time, state model.WorkerState, subscribers string) {
	h.refreshTexts()
	h.clock.Text = now.Format(ClockFormat)
	h.status.Text = statusText(state, h.localization)
	h.dot.FillColor = statusColor(state, h.colors)
	if subscribers == "" {
		subscribers = model.DefaultSubscribers
	}
	h.subsValue.Text = subscribers
	h.Refresh()
}

// statusText describes the worker state, e.g. "Waiting · next 14:05 · 1 failed"
func statusText(state model.WorkerState, l *Localization) string {
	var text string
	switch state.Status {
	case model.WorkerStatusSweeping:
		text = l.GetText(KeyStatusSweeping)
	case model.WorkerStatusSleeping:
		text = l.GetText(KeyStatusSleeping)
	case model.WorkerStatusStopped:
		text = l.GetText(KeyStatusStopped)
	default:
		text = l.GetText(KeyStatusIdle)
	}

	if state.Status == model.WorkerStatusSleeping && !state.NextSweepAt.IsZero() {
		text += MiddleDotSeparator + l.GetText(KeyNextRefresh) + " " + state.NextSweepAt.Format(NextRefreshFormat)
	}
	if state.HasFailures() {
		text += MiddleDotSeparator + fmt.Sprintf("%d %s", state.Failed, l.GetText(KeyFailedTargets))
	}
	return text
}

// statusColor picks the indicator dot color
func statusColor(state model.WorkerState, colors config.Colors) color.Color {
	switch {
	case state.Status.IsActive():
		return colors.SubsBlue
	case !state.Status.IsRunning():
		return colors.TextSecondary
	case state.HasFailures():
		return warningColor
	default:
		return colors.ViewsGreen
	}
}

// CreateRenderer creates the widget renderer
func (h *Header) CreateRenderer() fyne.WidgetRenderer {
	dot := container.NewGridWrap(fyne.NewSize(StatusDotSize, StatusDotSize), h.dot)
	left := container.NewVBox(
		h.title,
		container.NewHBox(container.NewCenter(dot), h.status, h.clock),
	)
	right := container.NewHBox(container.NewCenter(h.subsLabel), container.NewCenter(h.subsValue))

	content := container.NewPadded(container.NewBorder(nil, nil, left, right))
	return widget.NewSimpleRenderer(container.NewStack(h.background, content))
}

// MinSize keeps the header at a fixed height
func (h *Header) MinSize() fyne.Size {
	h.ExtendBaseWidget(h)
	size := h.BaseWidget.MinSize()
	if size.Height < HeaderHeight {
		size.Height = HeaderHeight
	}
	return size
}
