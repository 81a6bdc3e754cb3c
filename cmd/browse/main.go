package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/browsing/internal/config"
	"github.com/GriffinCanCode/browsing/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/browsing/internal/logging"
	"github.com/GriffinCanCode/browsing/internal/providers/browser"
)

func main() {
	// Parse flags
	scriptPath := flag.String("script", "", "Path to a YAML or TOML script")
	dev := flag.Bool("dev", false, "Development logging (console, debug level)")
	showMetrics := flag.Bool("metrics", false, "Print a request summary when done")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: browse -script steps.yaml [-dev] [-metrics]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "browse: %v\n", err)
		os.Exit(1)
	}
	level := cfg.Logging.Level
	if *dev {
		level = "debug"
	}
	logger := logging.FromFlags(level, cfg.Logging.Development || *dev)
	defer logger.Sync()

	if err := run(*scriptPath, cfg, logger, *showMetrics); err != nil {
		logger.Error("script failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(scriptPath string, cfg *config.Config, logger *logging.Logger, showMetrics bool) error {
	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	b, err := browser.FromConfig(cfg, browser.WithLogger(logger), browser.WithMetrics(metrics))
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}

	// Cancel in-flight requests on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running script",
		zap.String("script", scriptPath),
		zap.Int("steps", len(script.Steps)),
		zap.String("session_id", b.SessionID().String()),
	)

	runner := NewRunner(b, logger, os.Stdout)
	runErr := runner.Run(ctx, script)

	if page := runner.Page(); page != nil {
		fmt.Printf("status: %d\nurl: %s\n", page.Status, page.URL)
		if header, err := b.CookieHeader(page.URL); err == nil {
			fmt.Printf("cookies: %s\n", header)
		}
	}

	if showMetrics {
		snap := metrics.Snapshot()
		fmt.Printf("requests: %d (errors %d, transport errors %d), redirects: %d, bytes: %d, avg: %s\n",
			snap.TotalRequests, snap.TotalErrors, snap.TransportErrors,
			snap.Redirects, snap.TotalBytes, snap.AverageDuration())
	}

	return runErr
}
