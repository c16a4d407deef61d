package chart

import "fmt"

// Scale selects the normalization policy
type Scale string

const (
	// ScaleLocal rescales each series to its own min/max
	ScaleLocal Scale = "local"
	// ScaleGlobal rescales all series against a shared min/max
	ScaleGlobal Scale = "global"
)

// Chart margins in pixels
const (
	MarginX float32 = 20
	MarginY float32 = 30
)

// ParseScale validates a scale name
func ParseScale(s string) (Scale, error) {
	switch Scale(s) {
	case ScaleLocal, ScaleGlobal:
		return Scale(s), nil
	case "":
		return ScaleLocal, nil
	}
	return "", fmt.Errorf("unknown chart scale %q", s)
}

// Point is a position in the drawing area
type Point struct {
	X, Y float32
}

// Rect is the drawing area, origin at the top-left corner
type Rect struct {
	X, Y, W, H float32
}

// Series is one polyline; Index is the row of the video it belongs to
type Series struct {
	Index  int
	Points []Point
}

// Normalize maps every history into [0, 1]. With ScaleLocal each series uses
// its own bounds, with ScaleGlobal all series share one. When min equals max
// the divisor is 1 so a flat series stays at 0.
func Normalize(histories [][]int64, scale Scale) [][]float64 {
	out := make([][]float64, len(histories))

	gmin, gmax, found := bounds(histories...)
	for i, h := range histories {
		if len(h) == 0 {
			continue
		}
		lo, hi := gmin, gmax
		if scale != ScaleGlobal || !found {
			lo, hi, _ = bounds(h)
		}
		div := float64(hi - lo)
		if div == 0 {
			div = 1
		}

		norm := make([]float64, len(h))
		for j, v := range h {
			norm[j] = float64(v-lo) / div
		}
		out[i] = norm
	}
	return out
}

func bounds(histories ...[]int64) (lo, hi int64, ok bool) {
	for _, h := range histories {
		for _, v := range h {
			if !ok {
				lo, hi, ok = v, v, true
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi, ok
}

// Step returns the horizontal distance between two consecutive points
func Step(area Rect, maxPoints int) float32 {
	if maxPoints < 2 {
		return 0
	}
	usable := area.W - 2*MarginX
	if usable < 0 {
		usable = 0
	}
	return usable / float32(maxPoints-1)
}

// Layout places every history with at least two points inside area.
// Series are aligned to the left edge; a partially filled history only
// spans part of the width.
func Layout(histories [][]int64, maxPoints int, area Rect, scale Scale) []Series {
	norm := Normalize(histories, scale)
	step := Step(area, maxPoints)

	usableH := area.H - 2*MarginY
	if usableH < 0 {
		usableH = 0
	}
	bottom := area.Y + area.H - MarginY
	left := area.X + MarginX

	series := make([]Series, 0, len(histories))
	for i, values := range norm {
		if len(values) < 2 {
			continue
		}
		points := make([]Point, len(values))
		for j, v := range values {
			points[j] = Point{
				X: left + float32(j)*step,
				Y: bottom - float32(v)*usableH,
			}
		}
		series = append(series, Series{Index: i, Points: points})
	}
	return series
}
