package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanBrus/IB-frontend/infrastructure/config"
	"github.com/DanBrus/IB-frontend/infrastructure/di"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, cleanup, err := di.InitializeServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer cleanup()

	services := map[string]*http.Server{
		"graph": newServer(cfg.ServerAddress, container.Router.GraphService()),
		"file":  newServer(cfg.FileServerAddress, container.Router.FileService()),
	}

	for name, srv := range services {
		go func(srv *http.Server, name string) {
			container.Logger.Info("Starting server",
				zap.String("service", name),
				zap.String("address", srv.Addr),
				zap.String("environment", cfg.Environment),
			)

			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				container.Logger.Fatal("Server failed to start", zap.String("service", name), zap.Error(err))
			}
		}(srv, name)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	container.Logger.Info("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	for name, srv := range services {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			container.Logger.Error("Server shutdown error", zap.String("service", name), zap.Error(err))
		}
	}

	log.Println("Servers stopped")
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
