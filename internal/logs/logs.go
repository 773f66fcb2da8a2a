// Package logs configures the process-wide logrus logger.
package logs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the shared application logger
var Logger = logrus.New()

// Options selects level, output format and an optional log file
type Options struct {
	Level  string
	Format string
	File   string
}

// Init applies opts to Logger. An unknown level falls back to info.
func Init(opts Options) error {
	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	out := io.Writer(os.Stdout)
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	Logger.SetOutput(out)
	return nil
}

// WithComponent returns an entry tagged with the emitting component
func WithComponent(name string) *logrus.Entry {
	return Logger.WithField("component", name)
}
