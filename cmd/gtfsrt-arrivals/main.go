package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nickcwilkins/gtfsrt-arrivals/config"
	"github.com/nickcwilkins/gtfsrt-arrivals/report"
	"github.com/nickcwilkins/gtfsrt-arrivals/server"
	"github.com/nickcwilkins/gtfsrt-arrivals/source"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to configuration file")
	mode := flag.String("mode", "serve", "serve|oneshot")
	sourceName := flag.String("source", "", "source name (oneshot; defaults to the first configured source)")
	stopID := flag.String("stop", "", "stop_id to query (oneshot)")
	routeID := flag.String("route", "", "route_id filter (oneshot)")
	direction := flag.String("direction", "", "direction_id filter, 0|1 (oneshot)")
	env := flag.String("env", "production", "environment name for error reporting")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := report.Setup(cfg.SentryDSN, *env); err != nil {
		logger.Error("failed to init error reporting", "error", err)
		os.Exit(1)
	}
	defer report.Flush()

	registry := source.NewRegistry(cfg, logger)

	switch *mode {
	case "oneshot":
		if err := runOneshot(registry, *sourceName, *stopID, *routeID, *direction); err != nil {
			logger.Error("oneshot failed", "error", err)
			os.Exit(1)
		}
	case "serve":
		runServe(cfg, registry, logger)
	default:
		logger.Error("unknown mode", "mode", *mode)
		os.Exit(1)
	}
}

// runOneshot performs a single refresh of one source and prints the arrival
// query result as JSON.
func runOneshot(registry *source.Registry, sourceName, stopID, routeID, direction string) error {
	if sourceName == "" {
		sourceName = registry.Names()[0]
	}
	src, ok := registry.Get(sourceName)
	if !ok {
		return fmt.Errorf("no such source: %s", sourceName)
	}
	if stopID == "" {
		return fmt.Errorf("oneshot mode requires -stop")
	}
	var directionID *uint32
	switch direction {
	case "":
	case "0", "1":
		d := uint32(direction[0] - '0')
		directionID = &d
	default:
		return fmt.Errorf("direction must be 0 or 1")
	}

	if err := src.Refresh(context.Background()); err != nil {
		return err
	}
	list := src.Snapshot().NextArrivals(stopID, routeID, directionID)
	buf, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}

func runServe(cfg *config.AppConfig, registry *source.Registry, logger *slog.Logger) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go registry.RunAll(ctx)

	srv := server.New(cfg, registry, logger)
	srv.Start()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	} else {
		logger.Info("server shut down successfully")
	}
}
