// Demo data seeder for local development.
package main

import (
	"context"
	"flag"
	"log"

	"lydskog/internal"
	"lydskog/internal/seeder"
)

func main() {
	viewCount := flag.Int("views", 2000, "number of page views to generate")
	flag.Parse()

	app, err := internal.NewApp()
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if err := app.DBManager.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	s := seeder.NewSeeder(app.DBManager, nil, *viewCount)
	if err := s.Seed(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
