package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-monitor/internal/chart"
	"github.com/ytget/yt-monitor/internal/config"
)

// ChartWidget draws every history as a polyline with optional point markers
type ChartWidget struct {
	widget.BaseWidget

	colors    config.Colors
	maxPoints int
	scale     chart.Scale

	histories    [][]int64
	showMarkers  bool
	markerRadius float32
	axisTime     string
	axisViews    string
}

// NewChartWidget creates an empty chart
func NewChartWidget(colors config.Colors, maxPoints int, scale chart.Scale) *ChartWidget {
	c := &ChartWidget{
		colors:       colors,
		maxPoints:    maxPoints,
		scale:        scale,
		showMarkers:  config.DefaultShowMarkers,
		markerRadius: config.DefaultMarkerRadius,
	}
	c.ExtendBaseWidget(c)
	return c
}

// SetHistories replaces the series, one per row in display order
func (c *ChartWidget) SetHistories(histories [][]int64) {
	c.histories = histories
	c.Refresh()
}

// SetMarkers toggles point markers and sets their radius in pixels
func (c *ChartWidget) SetMarkers(show bool, radius int) {
	c.showMarkers = show
	c.markerRadius = float32(radius)
	c.Refresh()
}

// SetAxisLabels sets the captions of the time and views axes
func (c *ChartWidget) SetAxisLabels(timeLabel, viewsLabel string) {
	c.axisTime = timeLabel
	c.axisViews = viewsLabel
	c.Refresh()
}

// MinSize returns the minimum chart size
func (c *ChartWidget) MinSize() fyne.Size {
	return fyne.NewSize(ChartMinWidth, ChartMinHeight)
}

// CreateRenderer creates the widget renderer
func (c *ChartWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &chartRenderer{
		chart:      c,
		background: canvas.NewRectangle(c.colors.ChartBg),
		timeLabel:  canvas.NewText("", c.colors.TextSecondary),
		viewsLabel: canvas.NewText("", c.colors.TextSecondary),
	}
	r.background.CornerRadius = 10
	r.timeLabel.TextSize = AxisLabelSize
	r.viewsLabel.TextSize = AxisLabelSize
	return r
}

// chartRenderer keeps pools of lines and circles and reuses them every frame
type chartRenderer struct {
	chart *ChartWidget

	background *canvas.Rectangle
	timeLabel  *canvas.Text
	viewsLabel *canvas.Text

	lines   []*canvas.Line
	circles []*canvas.Circle
	objects []fyne.CanvasObject
}

// Layout places the background, labels and series for size
func (r *chartRenderer) Layout(size fyne.Size) {
	c := r.chart

	r.background.Resize(size)
	r.background.Move(fyne.NewPos(0, 0))

	r.viewsLabel.Text = c.axisViews
	r.viewsLabel.Move(fyne.NewPos(10, 10))
	r.viewsLabel.Resize(r.viewsLabel.MinSize())

	r.timeLabel.Text = c.axisTime
	timeSize := r.timeLabel.MinSize()
	r.timeLabel.Resize(timeSize)
	r.timeLabel.Move(fyne.NewPos(size.Width-timeSize.Width-10, size.Height-timeSize.Height-4))

	area := chart.Rect{W: size.Width, H: size.Height}
	series := chart.Layout(c.histories, c.maxPoints, area, c.scale)

	lineCount, circleCount := 0, 0
	for _, s := range series {
		col := c.colors.LineColor(s.Index)
		for i, p := range s.Points {
			if i > 0 {
				line := r.line(lineCount)
				lineCount++
				prev := s.Points[i-1]
				line.StrokeColor = col
				line.StrokeWidth = ChartLineWidth
				line.Position1 = fyne.NewPos(prev.X, prev.Y)
				line.Position2 = fyne.NewPos(p.X, p.Y)
				line.Show()
			}
			if c.showMarkers {
				circle := r.circle(circleCount)
				circleCount++
				rad := c.markerRadius
				circle.FillColor = col
				circle.Position1 = fyne.NewPos(p.X-rad, p.Y-rad)
				circle.Position2 = fyne.NewPos(p.X+rad, p.Y+rad)
				circle.Show()
			}
		}
	}

	for _, line := range r.lines[lineCount:] {
		line.Hide()
	}
	for _, circle := range r.circles[circleCount:] {
		circle.Hide()
	}
}

// line returns the pooled line i, growing the pool when needed
func (r *chartRenderer) line(i int) *canvas.Line {
	for len(r.lines) <= i {
		r.lines = append(r.lines, canvas.NewLine(color.Transparent))
		r.objects = nil
	}
	return r.lines[i]
}

// circle returns the pooled circle i, growing the pool when needed
func (r *chartRenderer) circle(i int) *canvas.Circle {
	for len(r.circles) <= i {
		r.circles = append(r.circles, canvas.NewCircle(color.Transparent))
		r.objects = nil
	}
	return r.circles[i]
}

// visibleLines counts the segments currently drawn
func (r *chartRenderer) visibleLines() int {
	n := 0
	for _, l := range r.lines {
		if l.Visible() {
			n++
		}
	}
	return n
}

// visibleCircles counts the markers currently drawn
func (r *chartRenderer) visibleCircles() int {
	n := 0
	for _, c := range r.circles {
		if c.Visible() {
			n++
		}
	}
	return n
}

// MinSize returns the minimum size
func (r *chartRenderer) MinSize() fyne.Size {
	return r.chart.MinSize()
}

// Refresh re-lays out the series and redraws
func (r *chartRenderer) Refresh() {
	r.Layout(r.chart.Size())
	for _, obj := range r.Objects() {
		canvas.Refresh(obj)
	}
}

// Objects returns background, labels, lines then markers
func (r *chartRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		objs := make([]fyne.CanvasObject, 0, 3+len(r.lines)+len(r.circles))
		objs = append(objs, r.background, r.viewsLabel, r.timeLabel)
		for _, l := range r.lines {
			objs = append(objs, l)
		}
		for _, c := range r.circles {
			objs = append(objs, c)
		}
		r.objects = objs
	}
	return r.objects
}

// Destroy cleans up the renderer
func (r *chartRenderer) Destroy() {}
