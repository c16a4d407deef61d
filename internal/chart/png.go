package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default export size
const (
	DefaultExportWidth  = 1200
	DefaultExportHeight = 600
)

// ErrNoSeries is returned when no video has enough points to draw
var ErrNoSeries = errors.New("no series with at least two points")

// ExportInput describes one chart export
type ExportInput struct {
	Names      []string     // series names in row order
	Histories  [][]int64    // one history per name
	LineColors []color.NRGBA // cycled by row index
	Background color.NRGBA
	Text       color.NRGBA
	MaxPoints  int
	Scale      Scale
	Width      int
	Height     int
	Title      string
}

// RenderPNG draws the normalized series to w as a PNG image
func RenderPNG(w io.Writer, in ExportInput) error {
	norm := Normalize(in.Histories, in.Scale)

	series := []gochart.Series{}
	for i, values := range norm {
		if len(values) < 2 {
			continue
		}
		xs := make([]float64, len(values))
		for j := range xs {
			xs[j] = float64(j)
		}
		name := fmt.Sprintf("#%d", i+1)
		if i < len(in.Names) {
			name = in.Names[i]
		}
		col := toDrawing(lineColor(in.LineColors, i))
		series = append(series, gochart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: values,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 3,
				DotColor:    col,
				DotWidth:    4,
			},
		})
	}
	if len(series) == 0 {
		return ErrNoSeries
	}

	width, height := in.Width, in.Height
	if width <= 0 {
		width = DefaultExportWidth
	}
	if height <= 0 {
		height = DefaultExportHeight
	}
	maxX := float64(in.MaxPoints - 1)
	if maxX < 1 {
		maxX = 1
	}

	bg := toDrawing(in.Background)
	text := toDrawing(in.Text)
	axisStyle := gochart.Style{FontColor: text, StrokeColor: text}

	ch := gochart.Chart{
		Title:      in.Title,
		TitleStyle: gochart.Style{FontColor: text},
		Width:      width,
		Height:     height,
		Background: gochart.Style{
			FillColor: bg,
			Padding: gochart.Box{
				Top:    int(MarginY),
				Left:   int(MarginX),
				Right:  int(MarginX),
				Bottom: int(MarginY),
			},
		},
		Canvas: gochart.Style{FillColor: bg},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: maxX},
			Style: axisStyle,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
			Style: axisStyle,
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func lineColor(colors []color.NRGBA, index int) color.NRGBA {
	if len(colors) == 0 {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return colors[index%len(colors)]
}

func toDrawing(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
