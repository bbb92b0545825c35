package reportpdf

import (
	"io"
	"log/slog"
	"time"
)

// exporterConfig holds internal configuration for an Exporter.
type exporterConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	headless     string
	autoDownload bool
	logger       *slog.Logger
}

func defaultConfig() exporterConfig {
	return exporterConfig{
		timeout:  30 * time.Second,
		headless: "new",
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures an [Exporter].
type Option func(*exporterConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *exporterConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single export, covering
// navigation, rendering, and capture. Defaults to 30 seconds. A zero or
// negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *exporterConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *exporterConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload downloads a compatible Chromium binary if none is
// found on the system, caching it for later runs. Ignored when
// [WithChromePath] is also given.
func WithAutoDownload() Option {
	return func(c *exporterConfig) {
		c.autoDownload = true
	}
}

// WithLogger enables logging. By default the Exporter produces no log
// output. Export failures are logged at [slog.LevelError], pipeline
// milestones at [slog.LevelDebug].
func WithLogger(l *slog.Logger) Option {
	return func(c *exporterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
