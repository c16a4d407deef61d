package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json5", `{
		// only targets are required
		targets: ["https://youtu.be/ABC123"],
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://youtu.be/ABC123"}, cfg.Targets)
	assert.Equal(t, DefaultPollIntervalSeconds, cfg.PollIntervalSeconds)
	assert.Equal(t, DefaultMaxHistoryPoints, cfg.MaxHistoryPoints)
	assert.Equal(t, DefaultFetchTimeoutSeconds, cfg.FetchTimeoutSeconds)
	assert.Equal(t, DefaultTargetDelaySeconds, cfg.TargetDelaySeconds)
	assert.Equal(t, ChartScaleLocal, cfg.ChartScale)
	assert.Equal(t, DefaultWindowTitle, cfg.Window.Title)
	assert.Equal(t, filepath.Join(dir, DefaultHistoryFile), cfg.HistoryFile)
	assert.Equal(t, DefaultPalette(), cfg.Colors)
}

func TestLoadExplicitZeroSurvives(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json5", `{
		targets: ["https://youtu.be/ABC123"],
		targetDelaySeconds: 0,
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.TargetDelaySeconds)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
targets:
  - https://www.youtube.com/watch?v=ABC123
pollIntervalSeconds: 600
chartScale: global
colors:
  lineColors: ["#000000"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.PollIntervalSeconds)
	assert.Equal(t, ChartScaleGlobal, cfg.ChartScale)
	assert.Equal(t, []string{"#000000"}, cfg.Colors.LineColors)
	assert.Equal(t, DefaultPalette().Background, cfg.Colors.Background)
}

func TestLoadLocalOverrideWins(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json5", `{
		targets: ["https://youtu.be/A"],
		pollIntervalSeconds: 600,
		locale: "en",
	}`)
	writeFile(t, dir, "config.local.json5", `{
		pollIntervalSeconds: 120,
		locale: "it",
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.PollIntervalSeconds)
	assert.Equal(t, "it", cfg.Locale)
	assert.Equal(t, []string{"https://youtu.be/A"}, cfg.Targets, "fields absent from the override are kept")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		isErr error
	}{
		{name: "no targets", body: `{targets: []}`, isErr: ErrNoTargets},
		{name: "malformed", body: `{targets: [`},
		{name: "bad scale", body: `{targets: ["x"], chartScale: "log"}`},
		{name: "bad color", body: `{targets: ["x"], colors: {background: "green"}}`},
		{name: "bad log level", body: `{targets: ["x"], logLevel: "loud"}`},
		{name: "history too short", body: `{targets: ["x"], maxHistoryPoints: 1}`},
		{name: "negative jitter", body: `{targets: ["x"], jitterSeconds: -5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.json5", tt.body)
			_, err := Load(path)
			require.Error(t, err)
			if tt.isErr != nil {
				assert.True(t, errors.Is(err, tt.isErr), "got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json5"))
	require.Error(t, err)
}

func TestLocalOverridePath(t *testing.T) {
	assert.Equal(t, "/etc/yt/config.local.json5", LocalOverridePath("/etc/yt/config.json5"))
	assert.Equal(t, "config.local.yaml", LocalOverridePath("config.yaml"))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff0000", want: color.NRGBA{R: 0xff, A: 0xff}},
		{in: "3ea6ff", want: color.NRGBA{R: 0x3e, G: 0xa6, B: 0xff, A: 0xff}},
		{in: "#fff", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestColorsLineColorCycles(t *testing.T) {
	colors, err := DefaultPalette().Resolve()
	require.NoError(t, err)

	n := len(colors.LineColors)
	assert.Equal(t, colors.LineColors[0], colors.LineColor(0))
	assert.Equal(t, colors.LineColors[1], colors.LineColor(n+1))
}
