package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/guildkeeper/app"
	"github.com/Black-And-White-Club/guildkeeper/config"
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

	application, err := app.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	startErr := application.Start(ctx)
	if err := application.Close(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if startErr != nil {
		log.Fatalf("Application stopped: %v", startErr)
	}
	log.Println("Application shut down gracefully.")
}
