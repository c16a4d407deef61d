package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-monitor/internal/config"
	"github.com/ytget/yt-monitor/internal/model"
)

// VideoList shows one row per configured target, in target order
type VideoList struct {
	targets   []string
	colors    config.Colors
	formatter *model.NumberFormatter
	logger    zerolog.Logger

	snapshot *model.Snapshot

	// UI components
	container *fyne.Container
	list      *widget.List
}

// NewVideoList creates the list for targets
func NewVideoList(targets []string, colors config.Colors, formatter *model.NumberFormatter, logger zerolog.Logger) *VideoList {
	vl := &VideoList{
		targets:   append([]string(nil), targets...),
		colors:    colors,
		formatter: formatter,
		logger:    logger,
		snapshot:  model.NewSnapshot(),
	}

	vl.createUI()
	return vl
}

func (vl *VideoList) createUI() {
	vl.list = widget.NewList(
		func() int {
			return len(vl.targets)
		},
		func() fyne.CanvasObject {
			return NewVideoRow(vl.colors)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			vl.updateVideoRow(id, obj)
		},
	)

	vl.container = container.NewBorder(nil, nil, nil, nil, vl.list)
}

// updateVideoRow fills a recycled row with the entry for target id
func (vl *VideoList) updateVideoRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(vl.targets) {
		vl.logger.Warn().Int("id", id).Int("targets", len(vl.targets)).Msg("updateVideoRow called with invalid ID")
		return
	}

	row, ok := obj.(*VideoRow)
	if !ok {
		vl.logger.Warn().Str("type", fmt.Sprintf("%T", obj)).Msg("Expected VideoRow")
		return
	}

	row.Update(id, vl.snapshot.VideoOrPlaceholder(vl.targets[id]), vl.formatter)
}

// SetSnapshot replaces the displayed data. Must run on the UI goroutine.
func (vl *VideoList) SetSnapshot(snap *model.Snapshot) {
	if snap == nil {
		return
	}
	vl.snapshot = snap
	vl.list.Refresh()
}

// Container returns the main container of the list
func (vl *VideoList) Container() *fyne.Container {
	return vl.container
}
