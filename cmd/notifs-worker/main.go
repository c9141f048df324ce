package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulsefeed/internal/di"
	"pulsefeed/internal/notifdb"
	"pulsefeed/internal/ops"
)

func main() {
	log.Println("Initializing notification worker...")
	app, err := di.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := notifdb.Migrate(app.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opsServer := ops.NewServer(app.Config.Worker.OpsPort, func(ctx context.Context) error {
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			return err
		}
		sqlDB, err := app.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	go func() {
		log.Printf("Ops server listening on :%s", app.Config.Worker.OpsPort)
		if err := opsServer.Start(); err != nil {
			log.Fatalf("Failed to serve ops endpoints: %v", err)
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- app.Consumer.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Println("Shutting down worker...")
		cancel()
		if err := <-done; err != nil {
			log.Printf("Consumer stopped with error: %v", err)
		}
	case err := <-done:
		if err != nil {
			log.Fatalf("Consumer failed: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ops server shutdown error: %v", err)
	}
	log.Println("Worker stopped")
}
