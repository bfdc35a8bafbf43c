// Command site runs the public blog deployment: published-post pages plus a
// JWT-gated write surface and the login endpoint that issues the tokens.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/config"
	"inkwell/database"
	"inkwell/site"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	srv := site.New(cfg, db)
	app := srv.App()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down site...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Site shutdown error: %v", err)
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Site resource shutdown error: %v", err)
		}
	}()

	log.Printf("Site starting on port %s...", cfg.SitePort)
	if err := app.Listen(":" + cfg.SitePort); err != nil {
		log.Fatalf("Site failed to start: %v", err)
	}
}
