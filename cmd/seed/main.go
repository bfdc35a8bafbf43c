// Command seed populates the database with the default content set.
package main

import (
	"context"
	"log"

	"inkwell/config"
	"inkwell/database"
	"inkwell/seed"
)

func main() {
	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.NewSeeder(db).Run(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
