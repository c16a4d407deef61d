package chart

// Package chart turns bounded view histories into drawable geometry. It has
// no UI dependency: the Fyne widgets and the PNG exporter both consume the
// same normalized series.
