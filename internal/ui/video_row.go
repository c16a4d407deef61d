package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-monitor/internal/config"
	"github.com/ytget/yt-monitor/internal/model"
)

var negativeColor = color.NRGBA{R: 231, G: 76, B: 60, A: 255}

// VideoRow shows one tracked video: palette marker, title, views and delta
type VideoRow struct {
	widget.BaseWidget

	colors config.Colors

	// UI components
	background *canvas.Rectangle
	marker     *canvas.Circle
	titleText  *canvas.Text
	viewsText  *canvas.Text
	deltaText  *canvas.Text
}

// NewVideoRow creates a new video row widget
func NewVideoRow(colors config.Colors) *VideoRow {
	vr := &VideoRow{colors: colors}
	vr.ExtendBaseWidget(vr)
	vr.createUI()
	return vr
}

func (vr *VideoRow) createUI() {
	vr.background = canvas.NewRectangle(vr.colors.PanelBg)
	vr.background.CornerRadius = 6

	vr.marker = canvas.NewCircle(vr.colors.LineColor(0))

	vr.titleText = canvas.NewText(model.LoadingTitle, vr.colors.TextPrimary)
	vr.titleText.TextSize = RowTitleSize

	vr.viewsText = canvas.NewText("0", vr.colors.ViewsGreen)
	vr.viewsText.TextSize = RowValueSize
	vr.viewsText.TextStyle = fyne.TextStyle{Bold: true}
	vr.viewsText.Alignment = fyne.TextAlignTrailing

	vr.deltaText = canvas.NewText(model.NoDataPlaceholder, vr.colors.TextSecondary)
	vr.deltaText.Alignment = fyne.TextAlignTrailing
	vr.deltaText.TextStyle = fyne.TextStyle{Monospace: true}
}

// Update fills the row for the video at position index
func (vr *VideoRow) Update(index int, video model.Video, formatter *model.NumberFormatter) {
	vr.marker.FillColor = vr.colors.LineColor(index)
	vr.titleText.Text = video.DisplayTitle()
	vr.viewsText.Text = formatter.Format(video.Views)
	vr.deltaText.Text = video.DeltaString()
	vr.deltaText.Color = deltaColor(video, vr.colors)
	vr.Refresh()
}

func deltaColor(video model.Video, colors config.Colors) color.Color {
	pct, ok := video.DeltaPercent()
	switch {
	case !ok || pct == 0:
		return colors.TextSecondary
	case pct < 0:
		return negativeColor
	default:
		return colors.ViewsGreen
	}
}

// CreateRenderer creates the widget renderer
func (vr *VideoRow) CreateRenderer() fyne.WidgetRenderer {
	return &videoRowRenderer{row: vr}
}

// videoRowRenderer renders the video row widget
type videoRowRenderer struct {
	row    *VideoRow
	layout *fyne.Container
}

// Layout arranges the components
func (r *videoRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size, height kept within the row bounds
func (r *videoRowRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	size := r.layout.MinSize()
	height := fyne.Min(fyne.Max(size.Height, RowMinHeight), RowMaxHeight)
	return fyne.NewSize(fyne.Max(size.Width, RowMinWidth), height)
}

// Refresh refreshes the renderer
func (r *videoRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.row.marker.Refresh()
	r.row.titleText.Refresh()
	r.row.viewsText.Refresh()
	r.row.deltaText.Refresh()
}

// Objects returns the container objects
func (r *videoRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *videoRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *videoRowRenderer) createLayout() {
	vr := r.row

	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	marker := container.NewCenter(container.NewGridWrap(fyne.NewSize(MarkerSize, MarkerSize), vr.marker))
	right := container.NewHBox(
		container.NewCenter(fixedWidth(ViewsWidth, vr.viewsText)),
		container.NewCenter(fixedWidth(DeltaWidth, vr.deltaText)),
	)
	title := container.NewVBox(layout.NewSpacer(), vr.titleText, layout.NewSpacer())

	content := container.NewBorder(nil, nil, marker, right, title)
	r.layout = container.NewStack(vr.background, container.NewPadded(content))
}
