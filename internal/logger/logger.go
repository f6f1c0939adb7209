// Package logger is the process-wide log sink for parallax.
//
// Errors always reach the output. Debug, info and warning records are
// emitted only in verbose mode. Records are console lines by default and
// timestamped JSON objects after SetJSON(true).
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

type sink struct {
	out     io.Writer
	verbose bool
	json    bool
	zl      zerolog.Logger
}

var (
	mu  sync.RWMutex
	cur = newSink(os.Stderr, false, false)
)

func newSink(out io.Writer, verbose, json bool) sink {
	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var zl zerolog.Logger
	if json {
		zl = zerolog.New(out).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:          out,
			NoColor:      true,
			PartsExclude: []string{zerolog.TimestampFieldName},
		})
	}
	return sink{out: out, verbose: verbose, json: json, zl: zl.Level(level)}
}

func reconfigure(fn func(s *sink)) {
	mu.Lock()
	defer mu.Unlock()
	next := cur
	fn(&next)
	cur = newSink(next.out, next.verbose, next.json)
}

func current() sink {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// SetVerbose turns debug, info and warning records on or off.
func SetVerbose(v bool) { reconfigure(func(s *sink) { s.verbose = v }) }

// SetJSON switches to one JSON object per record.
func SetJSON(v bool) { reconfigure(func(s *sink) { s.json = v }) }

// SetOutput redirects every record. The default is os.Stderr.
func SetOutput(w io.Writer) { reconfigure(func(s *sink) { s.out = w }) }

// IsVerbose reports whether verbose mode is on.
func IsVerbose() bool { return current().verbose }

// Section writes a "=== name ===" banner between phases. Console mode only.
func Section(name string) {
	s := current()
	if s.verbose && !s.json {
		fmt.Fprintf(s.out, "\n=== %s ===\n", name)
	}
}

// Debug logs a formatted message in verbose mode.
func Debug(format string, args ...any) {
	l := current().zl
	l.Debug().Msgf(format, args...)
}

// Info logs a formatted progress message in verbose mode.
func Info(format string, args ...any) {
	l := current().zl
	l.Info().Msgf(format, args...)
}

// Warn logs a recoverable problem in verbose mode.
func Warn(format string, args ...any) {
	l := current().zl
	l.Warn().Msgf(format, args...)
}

// Error logs err with a message, verbose or not.
func Error(err error, format string, args ...any) {
	l := current().zl
	l.Error().Err(err).Msgf(format, args...)
}
