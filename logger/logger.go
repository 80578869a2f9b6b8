// Package logger configures the process-wide structured logger.
package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Options select where and how the process logs.
type Options struct {
	// Level is one of debug, info, warning, error.
	Level string
	// File receives the log stream; empty keeps it on stderr.
	File string
	// Format is text or json.
	Format string
	// Debug forces the debug level regardless of Level.
	Debug bool
}

// Configure applies the options to the global logger. Operator-facing
// progress lines own stdout, so logs go to stderr unless a file is set.
func Configure(opts Options) error {
	level := opts.Level
	if opts.Debug {
		level = "debug"
	}
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}
	logrus.SetLevel(parsed)

	switch opts.Format {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", opts.Format)
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		logrus.SetOutput(f)
	} else {
		logrus.SetOutput(os.Stderr)
	}

	return nil
}
