// ABOUTME: Builder for the zerolog file logger shared by every command.
// ABOUTME: Each run is tagged with a run_id; "critical" never exits the process.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	permission = 0600
)

// Build collects logger options before Make opens the output.
type Build struct {
	writer io.Writer
	path   string
	level  zerolog.Level
	runID  string
}

// Log is an opened logger together with the file backing it, if any.
type Log struct {
	Logger zerolog.Logger
	File   *os.File
	Path   string
	RunID  string
}

// New starts a logger build at info level.
func New() *Build {
	return &Build{level: zerolog.InfoLevel}
}

// FromPath appends log lines to the file at path.
func (b *Build) FromPath(path string) *Build {
	b.path = path
	return b
}

// FromWriter writes log lines to w. A path, when set, takes precedence.
func (b *Build) FromWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// Level sets the minimum level by name ("debug", "info", "warn", "error").
// Unknown names keep the current level.
func (b *Build) Level(name string) *Build {
	if name == "" {
		return b
	}
	if lvl, err := zerolog.ParseLevel(strings.ToLower(name)); err == nil && lvl != zerolog.NoLevel {
		b.level = lvl
	}
	return b
}

// RunID overrides the generated run id.
func (b *Build) RunID(id string) *Build {
	b.runID = id
	return b
}

// Make opens the output and returns the logger.
func (b *Build) Make() (*Log, error) {
	l := &Log{Path: b.path, RunID: b.runID}
	if l.RunID == "" {
		l.RunID = uuid.NewString()
	}

	w := b.writer
	if b.path != "" {
		if err := os.MkdirAll(filepath.Dir(b.path), 0750); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.File = f
		w = zerolog.SyncWriter(f)
	}
	if w == nil {
		w = io.Discard
	}

	l.Logger = zerolog.New(w).Level(b.level).With().Timestamp().Str("run_id", l.RunID).Logger()
	return l, nil
}

// Close closes the log file, if one was opened.
func (l *Log) Close() error {
	if l == nil || l.File == nil {
		return nil
	}
	err := l.File.Close()
	l.File = nil
	return err
}

// Critical starts an event for a failure that ends the session. It is
// logged at fatal level but does not exit.
func Critical(logger zerolog.Logger) *zerolog.Event {
	return logger.WithLevel(zerolog.FatalLevel).Str("severity", "critical")
}
