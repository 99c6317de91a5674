// Command events tails the guild and slap topics and logs every message.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Black-And-White-Club/guildkeeper/app"
	"github.com/Black-And-White-Club/guildkeeper/config"
	"github.com/Black-And-White-Club/guildkeeper/internal/eventbus"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.NATS.URL == "" {
		log.Fatal("nats.url is required to tail events")
	}

	logger := observability.NewLogger(os.Stdout, cfg.Observability.Environment, cfg.Observability.LogLevel)
	logger.Info("Starting event tail")

	bus, err := eventbus.New(cfg.NATS.URL, logger)
	if err != nil {
		log.Fatalf("Failed to create event bus: %v", err)
	}

	var wg sync.WaitGroup
	if err := bus.Audit(ctx, &wg, app.EventTopics()...); err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	<-ctx.Done()
	logger.Info("Shutting down event tail")
	if err := bus.Close(); err != nil {
		logger.Error("Failed to close event bus", "error", err)
	}
	wg.Wait()
}
