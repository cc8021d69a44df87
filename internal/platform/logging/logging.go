package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// Options selects where and how verbosely chronos logs.
type Options struct {
	Name  string
	Level string
	// File is opened in append mode. Empty means Output.
	File   string
	Output io.Writer
}

// New builds the process logger. The returned closer releases the log file
// and is safe to call when no file was opened.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}
	name := opts.Name
	if name == "" {
		name = "chronos"
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: out,
	})
	return logger, closer, nil
}

// OrNull returns logger, or a discarding logger when it is nil.
func OrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
