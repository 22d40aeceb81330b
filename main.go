package main

import (
	"context"
	"os"

	"github.com/edaniels/golog"
	"github.com/joho/godotenv"
)

func main() {
	logger := golog.NewLogger("probebridge")

	if err := godotenv.Load(); err != nil {
		logger.Debugw("no .env file loaded", "error", err)
	}

	cfg, err := LoadConfig(os.LookupEnv)
	if err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}
	logger.Infow("configuration loaded", "probe_id", cfg.ProbeID, "url", cfg.URL, "port", cfg.PortName)

	ctx := context.Background()

	if cfg.MetricsPushURL != "" {
		if err := initMetricsPush(ctx, cfg); err != nil {
			logger.Fatalw("failed to start metrics push", "url", cfg.MetricsPushURL, "error", err)
		}
		logger.Infow("pushing metrics", "url", cfg.MetricsPushURL)
	}

	b := newBridge(cfg, logger, os.Stdout)
	if err := b.run(ctx); err != nil {
		logger.Fatalw("no serial ports available", "error", err)
	}
}
