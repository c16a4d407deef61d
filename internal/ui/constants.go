package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Text fragments
const (
	MiddleDotSeparator = " · "
	ClockFormat        = "15:04:05"
	NextRefreshFormat  = "15:04"
	ExportFileName     = "yt-monitor-chart.png"
)

// Frame pacing
const (
	FramesPerSecond = 30
	FrameInterval   = time.Second / FramesPerSecond
)

// Layout sizing
const (
	HeaderHeight  float32 = 80
	RowMinWidth   float32 = 400
	RowMinHeight  float32 = 44
	RowMaxHeight  float32 = 100
	MarkerSize    float32 = 14
	StatusDotSize float32 = 12
	ViewsWidth    float32 = 140
	DeltaWidth    float32 = 90

	ChartMinWidth  float32 = 300
	ChartMinHeight float32 = 200
	ChartLineWidth float32 = 3

	SettingsDialogWidth  float32 = 460
	SettingsDialogHeight float32 = 340
)

// Text sizes
const (
	HeaderTitleSize float32 = 24
	HeaderValueSize float32 = 30
	RowTitleSize    float32 = 18
	RowValueSize    float32 = 20
	AxisLabelSize   float32 = 12
)
