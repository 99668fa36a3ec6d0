// Package logger builds the zerolog loggers used by the service and CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the level and destination of a logger.
type Config struct {
	// Level is one of trace, debug, info, warn, error or disabled.
	// (defaults to info)
	Level string
	// File, when set, receives the logs with size based rotation instead of
	// Output.
	File string
	// MaxSizeMB is the rotation size of File. (defaults to 10)
	MaxSizeMB int
	// Output receives the logs when File is empty. (defaults to os.Stderr)
	Output io.Writer
}

// New returns a logger for c and a closer that releases the log file, if any.
func New(c Config) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var out io.Writer = c.Output
	var closer io.Closer = nopCloser{}
	if c.File != "" {
		size := c.MaxSizeMB
		if size <= 0 {
			size = 10
		}
		rotating := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    size,
			MaxBackups: 3,
			Compress:   true,
		}
		out, closer = rotating, rotating
	}
	if out == nil {
		out = os.Stderr
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Str("component", "sanitizer").Logger()
	return l, closer, nil
}

// ParseLevel accepts zerolog level names in any case. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("sanitizer: invalid log level %q", s)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
