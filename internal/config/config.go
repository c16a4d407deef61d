package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/rs/zerolog"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

// ChartScale selects how chart series are normalized
type ChartScale string

const (
	// ChartScaleLocal rescales every series to its own min/max so slopes compare
	ChartScaleLocal ChartScale = "local"
	// ChartScaleGlobal rescales all series against one shared min/max
	ChartScaleGlobal ChartScale = "global"
)

// Default values applied when fields are absent from the config file
const (
	DefaultPollIntervalSeconds = 3600
	DefaultJitterSeconds       = 0
	DefaultMaxHistoryPoints    = 50
	DefaultTargetDelaySeconds  = 1
	DefaultFetchTimeoutSeconds = 60
	DefaultHistoryFile         = "history.json"
	DefaultLocale              = "en"
	DefaultChartScale          = ChartScaleLocal
	DefaultLogLevel            = "info"
	DefaultWindowWidth         = 1000
	DefaultWindowHeight        = 800
	DefaultWindowTitle         = "YouTube Live Stats"
)

// Supported file extensions
const (
	ExtYAML    = ".yaml"
	ExtYML     = ".yml"
	LocalInfix = ".local"
)

// MinHistoryLen is the smallest retention window that still draws a line
const MinHistoryLen = 2

// ErrNoTargets is returned when the config lists nothing to monitor
var ErrNoTargets = errors.New("targets must list at least one video")

// Config is the static configuration loaded once at startup
type Config struct {
	// Targets are the video (or playlist) URLs to monitor, in display order.
	Targets []string `json:"targets" yaml:"targets"`

	// PollIntervalSeconds is the base delay between two sweeps.
	PollIntervalSeconds int `json:"pollIntervalSeconds" yaml:"pollIntervalSeconds"`

	// JitterSeconds bounds the random offset added to the poll interval.
	JitterSeconds int `json:"jitterSeconds" yaml:"jitterSeconds"`

	// MaxHistoryPoints is the retention window per video.
	MaxHistoryPoints int `json:"maxHistoryPoints" yaml:"maxHistoryPoints"`

	// TargetDelaySeconds is the pause between two targets of one sweep.
	TargetDelaySeconds int `json:"targetDelaySeconds" yaml:"targetDelaySeconds"`

	// FetchTimeoutSeconds bounds a single fetch attempt.
	FetchTimeoutSeconds int `json:"fetchTimeoutSeconds" yaml:"fetchTimeoutSeconds"`

	// HistoryFile is the snapshot path, relative to the config file directory.
	HistoryFile string `json:"historyFile" yaml:"historyFile"`

	// Locale drives number grouping and the Accept-Language header.
	Locale string `json:"locale" yaml:"locale"`

	ChartScale ChartScale   `json:"chartScale" yaml:"chartScale"`
	LogLevel   string       `json:"logLevel" yaml:"logLevel"`
	Window     WindowConfig `json:"window" yaml:"window"`
	Colors     Palette      `json:"colors" yaml:"colors"`
}

// WindowConfig holds the dashboard window geometry
type WindowConfig struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Title  string `json:"title" yaml:"title"`
}

// Palette holds the dashboard colors as #rrggbb strings
type Palette struct {
	Background    string   `json:"background" yaml:"background"`
	PanelBg       string   `json:"panelBg" yaml:"panelBg"`
	TextPrimary   string   `json:"textPrimary" yaml:"textPrimary"`
	TextSecondary string   `json:"textSecondary" yaml:"textSecondary"`
	ViewsGreen    string   `json:"viewsGreen" yaml:"viewsGreen"`
	SubsBlue      string   `json:"subsBlue" yaml:"subsBlue"`
	ChartBg       string   `json:"chartBg" yaml:"chartBg"`
	LineColors    []string `json:"lineColors" yaml:"lineColors"`
}

// Colors is a Palette resolved to color values
type Colors struct {
	Background    color.NRGBA
	PanelBg       color.NRGBA
	TextPrimary   color.NRGBA
	TextSecondary color.NRGBA
	ViewsGreen    color.NRGBA
	SubsBlue      color.NRGBA
	ChartBg       color.NRGBA
	LineColors    []color.NRGBA
}

// LineColor returns the series color for a row index, cycling the palette
func (c Colors) LineColor(index int) color.NRGBA {
	if len(c.LineColors) == 0 {
		return c.TextPrimary
	}
	if index < 0 {
		index = -index
	}
	return c.LineColors[index%len(c.LineColors)]
}

// Resolve parses every color of the palette
func (p Palette) Resolve() (Colors, error) {
	var out Colors
	named := []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"background", p.Background, &out.Background},
		{"panelBg", p.PanelBg, &out.PanelBg},
		{"textPrimary", p.TextPrimary, &out.TextPrimary},
		{"textSecondary", p.TextSecondary, &out.TextSecondary},
		{"viewsGreen", p.ViewsGreen, &out.ViewsGreen},
		{"subsBlue", p.SubsBlue, &out.SubsBlue},
		{"chartBg", p.ChartBg, &out.ChartBg},
	}
	for _, n := range named {
		c, err := ParseHexColor(n.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("colors.%s: %w", n.name, err)
		}
		*n.dst = c
	}

	if len(p.LineColors) == 0 {
		return Colors{}, fmt.Errorf("colors.lineColors must not be empty")
	}
	for i, hex := range p.LineColors {
		c, err := ParseHexColor(hex)
		if err != nil {
			return Colors{}, fmt.Errorf("colors.lineColors[%d]: %w", i, err)
		}
		out.LineColors = append(out.LineColors, c)
	}
	return out, nil
}

// ParseHexColor parses "#rrggbb" (the leading # is optional)
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Load reads the config file at path, applies defaults, merges the optional
// "<name>.local<ext>" override next to it, and validates the result.
// JSON5 is used unless the extension is .yaml or .yml.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if err := decodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	localPath := LocalOverridePath(path)
	if _, err := os.Stat(localPath); err == nil {
		var override Config
		if err := decodeFile(localPath, &override); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("config: merge %s: %w", localPath, err)
		}
	}

	if cfg.HistoryFile != "" && !filepath.IsAbs(cfg.HistoryFile) {
		cfg.HistoryFile = filepath.Join(filepath.Dir(path), cfg.HistoryFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LocalOverridePath returns the override file name for path,
// e.g. config.json5 -> config.local.json5
func LocalOverridePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + LocalInfix + ext
}

func decodeFile(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtYAML, ExtYML:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse yaml %s: %w", path, err)
		}
	default:
		if err := json5.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse json5 %s: %w", path, err)
		}
	}
	return nil
}

// defaults returns a Config pre-populated with default values
func defaults() *Config {
	return &Config{
		PollIntervalSeconds: DefaultPollIntervalSeconds,
		JitterSeconds:       DefaultJitterSeconds,
		MaxHistoryPoints:    DefaultMaxHistoryPoints,
		TargetDelaySeconds:  DefaultTargetDelaySeconds,
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
		HistoryFile:         DefaultHistoryFile,
		Locale:              DefaultLocale,
		ChartScale:          DefaultChartScale,
		LogLevel:            DefaultLogLevel,
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  DefaultWindowTitle,
		},
		Colors: DefaultPalette(),
	}
}

// DefaultPalette returns the dark dashboard palette
func DefaultPalette() Palette {
	return Palette{
		Background:    "#0f0f0f",
		PanelBg:       "#212121",
		TextPrimary:   "#ffffff",
		TextSecondary: "#aaaaaa",
		ViewsGreen:    "#2ecc71",
		SubsBlue:      "#3ea6ff",
		ChartBg:       "#141414",
		LineColors:    []string{"#ff4d4d", "#3ea6ff", "#2ecc71", "#f1c40f", "#9b59b6", "#e67e22"},
	}
}

// Validate checks required fields and structural constraints
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTargets
	}
	for i, target := range c.Targets {
		if strings.TrimSpace(target) == "" {
			return fmt.Errorf("targets[%d]: empty URL", i)
		}
	}
	if c.PollIntervalSeconds <= 0 {
		return fmt.Errorf("pollIntervalSeconds must be positive")
	}
	if c.JitterSeconds < 0 {
		return fmt.Errorf("jitterSeconds must not be negative")
	}
	if c.MaxHistoryPoints < MinHistoryLen {
		return fmt.Errorf("maxHistoryPoints must be at least %d", MinHistoryLen)
	}
	if c.TargetDelaySeconds < 0 {
		return fmt.Errorf("targetDelaySeconds must not be negative")
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("fetchTimeoutSeconds must be positive")
	}
	if c.HistoryFile == "" {
		return fmt.Errorf("historyFile is required")
	}
	switch c.ChartScale {
	case ChartScaleLocal, ChartScaleGlobal:
	default:
		return fmt.Errorf("unknown chartScale %q", c.ChartScale)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive")
	}
	if _, err := c.Colors.Resolve(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// MustColors returns the resolved palette of a validated config
func (c *Config) MustColors() Colors {
	colors, err := c.Colors.Resolve()
	if err != nil {
		panic(err)
	}
	return colors
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (c *Config) Jitter() time.Duration {
	return time.Duration(c.JitterSeconds) * time.Second
}

func (c *Config) TargetDelay() time.Duration {
	return time.Duration(c.TargetDelaySeconds) * time.Second
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
