package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dforst25/week9-docker/internal/app/resthttp"
	"github.com/dforst25/week9-docker/internal/config"
	"golang.org/x/sync/errgroup"
)

// main инициализирует REST HTTP-сервис списка покупок и обеспечивает корректное завершение по сигналу.
func main() {
	logger := log.New(os.Stdout, "[shopping-list] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, srv, err := resthttp.NewServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer srv.Close()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Printf("REST listening on %s (store=%s)", cfg.ListenAddr, cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT или падении листенера.
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("REST shutdown error: %v", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		logger.Printf("REST stopped with error: %v", err)
		_ = srv.Close()
		os.Exit(1)
	}
	logger.Println("REST stopped")
}
