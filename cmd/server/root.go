package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bombfour/internal/app"
	"bombfour/internal/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	addr       string
	logLevel   string
	logFormat  string
	seed       int64
	delay      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "bombfour",
	Short: "Serve four-in-a-row with hidden bombs against the computer",
	Long: `bombfour serves a browser game: line up marks on a grid before the
computer does, while hidden bombs wipe out every mark around them.

Run with no arguments to serve the default presets on :8090
	bombfour

Load settings from a file and override the listen address
	bombfour --config bombfour.yaml --addr :9000
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("addr") {
			cfg.Server.Addr = addr
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if flags.Changed("log-format") {
			cfg.Log.Format = logFormat
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if flags.Changed("delay") {
			cfg.Server.OpponentDelay = delay
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(parent context.Context, cfg config.Config) error {
	logger, err := app.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, err := app.Boot(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Server.Addr).Info("server started")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVar(&addr, "addr", ":8090", "Listen address")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Fix the random seed of every new game (0 draws one per game)")
	rootCmd.Flags().DurationVar(&delay, "delay", 600*time.Millisecond, "Pause before the computer replies")
}
