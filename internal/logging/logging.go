// Package logging builds the zerolog logger shared by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB   = 5
	logMaxBackups  = 3
	logMaxAgeDays  = 28
	logFilePerm    = 0o750
	consoleTimeFmt = time.Kitchen
)

// Options configures New.
type Options struct {
	Verbose bool
	// Console receives console output. Nil selects stderr. A terminal gets
	// the human-readable console format.
	Console io.Writer
	// File, when set, also receives every entry through a rotating writer.
	File string
}

// Logger owns the zerolog.Logger and whatever file writer backs it.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// New creates a logger at Info level, or Debug when verbose. Console output is
// human-readable on a terminal without NO_COLOR and JSON otherwise.
func New(opts Options) (*Logger, error) {
	console := selectOutput(opts.Console)

	writer := console
	var closer io.Closer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), logFilePerm); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
		writer = zerolog.MultiLevelWriter(console, lj)
		closer = lj
	}

	logger := zerolog.New(writer).Level(selectLevel(opts.Verbose)).With().Timestamp().Logger()
	return &Logger{Logger: logger, closer: closer}, nil
}

func selectLevel(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func selectOutput(w io.Writer) io.Writer {
	if w == nil {
		w = os.Stderr
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: consoleTimeFmt,
		}
	}
	return w
}
