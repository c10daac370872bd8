// cmd/monitor/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tamzrod/haptic-monitor/internal/config"
	"github.com/tamzrod/haptic-monitor/internal/monitor"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: monitor <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		log.Fatalf("config env overlay failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	// --------------------
	// Build pipeline
	// --------------------

	mon, closeAll, err := monitor.Build(cfg.Monitor)
	if err != nil {
		log.Fatalf("monitor build failed: %v", err)
	}
	defer func() {
		if err := closeAll(); err != nil {
			log.Printf("close failed: %v", err)
		}
	}()

	log.Printf(
		"monitoring %s, device %d via %s %s (tick=%dms)",
		cfg.Monitor.Source.Endpoint,
		cfg.Monitor.Device.Index,
		cfg.Monitor.Device.Transport,
		cfg.Monitor.Device.Endpoint,
		cfg.Monitor.TickMs,
	)

	// --------------------
	// Run until interrupted
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon.Run(ctx)
}
