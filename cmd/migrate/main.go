package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dforst25/week9-docker/internal/config"
	"github.com/dforst25/week9-docker/internal/repo"
)

// main накатывает схему для SQL-драйверов; для jsonfile создаёт пустой файл, для memory ничего не делает.
func main() {
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err)
	}

	if cfg.StoreDriver == config.DriverMemory {
		logger.Println("memory store selected, skipping migrations")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := repo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer store.Close()

	if err := store.EnsureExists(ctx); err != nil {
		logger.Fatal(err)
	}

	logger.Printf("store %s is ready", cfg.StoreDriver)
}
