// Command seed populates the configured storage backend with demo
// marketplace data for local development.
package main

import (
	"context"
	"flag"
	"log"

	"campusmarket/internal/bootstrap"
	"campusmarket/internal/config"
	"campusmarket/internal/seed"
	"campusmarket/internal/storage"
	"campusmarket/internal/storage/memstore"
)

func main() {
	users := flag.Int("users", 20, "number of users to create")
	listings := flag.Int("listings", 3, "listings per user")
	roommateShare := flag.Float64("roommates", 0.5, "share of users with a roommate profile")
	messages := flag.Int("messages", 4, "messages per conversation pair")
	dryRun := flag.Bool("dry-run", false, "generate into an in-memory store without touching the database")
	flag.Parse()

	var store storage.Storage
	if *dryRun {
		store = memstore.New()
	} else {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		s, err := bootstrap.OpenStorage(cfg)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		store = s
	}
	defer func() { _ = store.Close() }()

	opts := seed.Options{
		NumUsers:           *users,
		ListingsPerUser:    *listings,
		RoommateShare:      *roommateShare,
		MessagesPerPairing: *messages,
	}
	if err := seed.Run(context.Background(), store, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	if *dryRun {
		log.Println("Dry run complete, nothing persisted")
		return
	}
	log.Println("Seeding complete")
}
