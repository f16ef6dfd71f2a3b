package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"MarketRadar/internal/app"
	"MarketRadar/internal/config"
	"MarketRadar/internal/domain"
	"MarketRadar/internal/logging"
)

func main() {
	watch := flag.String("watch", "", "comma-separated stocks; when set, only these are refreshed")
	events := flag.String("events", "", "manual events as stock|label|date entries separated by ';'")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}

	for _, stock := range splitList(*watch, ",") {
		application.Watch(stock)
	}
	for _, entry := range splitList(*events, ";") {
		parts := strings.SplitN(entry, "|", 3)
		ev := domain.UpcomingEvent{Stock: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			ev.Label = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			ev.When = strings.TrimSpace(parts[2])
		}
		application.AddEvent(ev)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

func splitList(raw, sep string) []string {
	var out []string
	for _, item := range strings.Split(raw, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
