package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"robinrocks-be/internal/bootstrap"
	"robinrocks-be/internal/config"
	"robinrocks-be/internal/server"
	"robinrocks-be/internal/tracer"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Tracing, off unless OTEL_ENABLED=true
	shutdownTracer := tracer.InitTracer(cfg.App.Environment)
	defer func() { _ = shutdownTracer(context.Background()) }()

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Background services
	go container.WebSocketHub.Run(ctx)
	go container.NotificationService.Start(ctx)
	go func() {
		log.Println("Background: Starting Lead Consumer...")
		if err := container.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
