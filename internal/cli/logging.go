package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a human-readable console logger writing to w
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
