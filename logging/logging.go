// Package logging builds the zerolog sinks for a depbot run.
//
// Sinks are configured once per run from the resolved logLevel, logFile,
// and logFileLevel options, and handed back as an explicit logger value.
// Nothing here mutates zerolog's global logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFileLevel is the file sink threshold when logFileLevel is unset.
const DefaultFileLevel = "debug"

// Config controls the log sinks for one run.
type Config struct {
	// Level is the console threshold ("trace" through "fatal").
	// Empty means "info".
	Level string

	// File, when set, adds a second sink appending to this path.
	File string

	// FileLevel is the file sink threshold. Empty means DefaultFileLevel.
	FileLevel string

	// Out overrides the console destination. Nil means stderr.
	Out io.Writer

	// Pretty switches the console sink to zerolog's ConsoleWriter.
	Pretty bool
}

// ParseLevel maps a configuration level name onto a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// Setup builds the logger for a run. The returned closer owns the log
// file handle when one was opened; it is nil otherwise. Callers close it
// when the run ends.
func Setup(cfg Config) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	var console io.Writer = out
	if cfg.Pretty {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	consoleSink := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: console},
		Level:  level,
	}

	if cfg.File == "" {
		logger := zerolog.New(consoleSink).Level(level).With().Timestamp().Logger()
		return logger, nil, nil
	}

	fileLevelName := cfg.FileLevel
	if fileLevelName == "" {
		fileLevelName = DefaultFileLevel
	}
	fileLevel, err := ParseLevel(fileLevelName)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	fileSink := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: file},
		Level:  fileLevel,
	}

	// The logger itself runs at the more verbose threshold; each sink
	// filters down to its own.
	logger := zerolog.New(zerolog.MultiLevelWriter(consoleSink, fileSink)).
		Level(minLevel(level, fileLevel)).
		With().Timestamp().Logger()
	return logger, file, nil
}

// Bootstrap returns the logger used before configuration is resolved:
// info and above, plain JSON. Nil out means stderr.
func Bootstrap(out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	return zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// minLevel returns the more verbose of two levels.
func minLevel(a, b zerolog.Level) zerolog.Level {
	if b < a {
		return b
	}
	return a
}
