package ui

// Package ui contains the Fyne-based desktop dashboard. It reads the published
// history snapshot and worker state on a fixed frame ticker and renders the
// header, the per-video rows and the multi-series chart. All UI strings are
// localized via Localization.
