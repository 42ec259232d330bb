package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	r := &runner{cfg: cfg, out: os.Stdout}
	if err := r.app().Run(context.Background(), os.Args); err != nil {
		logging.Error("admin command failed", "error", err)
		os.Exit(1)
	}
}
