package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"bombfour"
	"bombfour/internal/config"
	httphandler "bombfour/internal/http"
	"bombfour/internal/session"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from the log section of the config
func NewLogger(cfg config.Log, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

// Boot wires up templates, sessions and HTTP routes and starts the idle game sweeper.
// The sweeper stops when ctx is done.
func Boot(ctx context.Context, cfg config.Config, logger *logrus.Logger) (http.Handler, error) {
	// Loads templates from the embedded filesystem
	templatesFS, err := fs.Sub(bombfour.Content, "templates")
	if err != nil {
		return nil, err
	}
	// Serves static assets from the embedded filesystem
	staticFS, err := fs.Sub(bombfour.Content, "static")
	if err != nil {
		return nil, err
	}

	sessions, err := session.Open(cfg.Server.SessionKeyDir, 0)
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}

	h := httphandler.New(cfg, logger, sessions, templatesFS, staticFS)
	go h.RunSweeper(ctx, sweepEvery(cfg))

	return h.WithLogging(h.Routes()), nil
}

// sweepEvery checks for idle games four times per TTL, at most once a minute
func sweepEvery(cfg config.Config) time.Duration {
	if cfg.Server.RoomTTL <= 0 {
		return 0
	}
	every := cfg.Server.RoomTTL / 4
	if every < time.Minute {
		every = time.Minute
	}
	return every
}
