package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage     = "app_language"
	KeyShowMarkers  = "show_point_markers"
	KeyMarkerRadius = "marker_radius"
	KeyExportDir    = "export_directory"
)

// Default values
const (
	DefaultLanguage     = "system"
	DefaultShowMarkers  = true
	DefaultMarkerRadius = 3
	MinMarkerRadius     = 1
	MaxMarkerRadius     = 6
)

// Settings manages UI preferences that survive restarts. Everything the
// monitor itself needs lives in Config.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"it":     "Italiano",
		"ru":     "Русский",
	}
}

// GetShowMarkers returns whether chart points get a circle marker
func (s *Settings) GetShowMarkers() bool {
	return s.app.Preferences().BoolWithFallback(KeyShowMarkers, DefaultShowMarkers)
}

// SetShowMarkers sets whether chart points get a circle marker
func (s *Settings) SetShowMarkers(show bool) {
	s.app.Preferences().SetBool(KeyShowMarkers, show)
}

// GetMarkerRadius returns the chart point marker radius in pixels
func (s *Settings) GetMarkerRadius() int {
	value := s.app.Preferences().Int(KeyMarkerRadius)
	if value <= 0 {
		s.SetMarkerRadius(DefaultMarkerRadius)
		return DefaultMarkerRadius
	}
	return value
}

// SetMarkerRadius sets the marker radius, clamped to [MinMarkerRadius, MaxMarkerRadius]
func (s *Settings) SetMarkerRadius(radius int) {
	if radius < MinMarkerRadius {
		radius = MinMarkerRadius
	}
	if radius > MaxMarkerRadius {
		radius = MaxMarkerRadius
	}
	s.app.Preferences().SetInt(KeyMarkerRadius, radius)
}

// GetExportDirectory returns the directory chart exports default to
func (s *Settings) GetExportDirectory() string {
	dir := s.app.Preferences().String(KeyExportDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return os.TempDir()
		}
		return filepath.Join(home, "Pictures")
	}
	return dir
}

// SetExportDirectory sets the chart export directory
func (s *Settings) SetExportDirectory(dir string) {
	s.app.Preferences().SetString(KeyExportDir, dir)
}
