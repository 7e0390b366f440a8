package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"pcbanai/core/internal/config"
	"pcbanai/core/internal/container"
)

func main() {
	mode := "serve"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Infof("Starting PC Banai core (%s mode)...", mode)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Info("Configuration loaded successfully")

	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	ctx := context.Background()

	switch mode {
	case "serve":
		err = app.RunServer(ctx)
	case "scrape":
		err = app.RunScraper(ctx)
	default:
		log.Fatalf("Unknown mode %q (expected serve or scrape)", mode)
	}

	if err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}

	log.Info("Application finished successfully")
}
