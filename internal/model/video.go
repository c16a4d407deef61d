package model

import (
	"fmt"
	"strings"
)

// Display defaults
const (
	LoadingTitle       = "Loading..."
	NoDataPlaceholder  = "no data"
	DefaultSubscribers = "---"
	MaxTitleRunes      = 50
	DeltaFormat        = "%+.2f%%"
)

// Video is the tracked state of a single target, keyed by its configured URL
type Video struct {
	Title      string  `json:"title"`
	Views      int64   `json:"views"`
	StartViews int64   `json:"start_views"`
	History    []int64 `json:"history"`
}

// NewVideo returns a placeholder entry for a target that has not been fetched yet
func NewVideo() Video {
	return Video{
		Title:   LoadingTitle,
		History: []int64{},
	}
}

// WithReading returns a copy of v with one more reading applied.
// StartViews is only set while it is still zero, and History keeps at most
// maxPoints values, dropping the oldest first. v itself is never modified.
func (v Video) WithReading(title string, views int64, maxPoints int) Video {
	if maxPoints < 1 {
		maxPoints = 1
	}

	out := Video{
		Title:      title,
		Views:      views,
		StartViews: v.StartViews,
	}
	if out.StartViews == 0 {
		out.StartViews = views
	}

	history := v.History
	if len(history) >= maxPoints {
		history = history[len(history)-maxPoints+1:]
	}
	out.History = make([]int64, 0, len(history)+1)
	out.History = append(out.History, history...)
	out.History = append(out.History, views)
	return out
}

// Trimmed returns a copy of v whose history holds at most maxPoints values
func (v Video) Trimmed(maxPoints int) Video {
	if maxPoints < 1 {
		maxPoints = 1
	}
	out := v
	if len(v.History) > maxPoints {
		out.History = append([]int64(nil), v.History[len(v.History)-maxPoints:]...)
	}
	if out.History == nil {
		out.History = []int64{}
	}
	return out
}

// DeltaPercent returns the growth between the first and last history point.
// ok is false when there are fewer than two points or the first one is zero.
func (v Video) DeltaPercent() (pct float64, ok bool) {
	if len(v.History) < 2 {
		return 0, false
	}
	first := v.History[0]
	if first == 0 {
		return 0, false
	}
	last := v.History[len(v.History)-1]
	return float64(last-first) / float64(first) * 100, true
}

// DeltaString returns the delta formatted as "+50.00%", or the placeholder
func (v Video) DeltaString() string {
	pct, ok := v.DeltaPercent()
	if !ok {
		return NoDataPlaceholder
	}
	return fmt.Sprintf(DeltaFormat, pct)
}

// DisplayTitle returns a single-line title cut to MaxTitleRunes
func (v Video) DisplayTitle() string {
	title := strings.ReplaceAll(v.Title, "\n", " ")
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\t", " ")
	title = strings.TrimSpace(title)

	runes := []rune(title)
	if len(runes) > MaxTitleRunes {
		return string(runes[:MaxTitleRunes])
	}
	return title
}
