package seed

import (
	"context"
	"fmt"
	"log"

	"campusmarket/internal/models"
	"campusmarket/internal/storage"
)

// Options configure how much demo data to generate.
type Options struct {
	NumUsers           int
	ListingsPerUser    int
	RoommateShare      float64
	MessagesPerPairing int
}

// DefaultOptions are sized for a quick local demo.
func DefaultOptions() Options {
	return Options{
		NumUsers:           20,
		ListingsPerUser:    3,
		RoommateShare:      0.5,
		MessagesPerPairing: 4,
	}
}

// DemoData populates the store with a demo marketplace.
func DemoData(store storage.Storage) error {
	return Run(context.Background(), store, DefaultOptions())
}

// Run generates users, listings, roommate profiles, and message
// threads according to opts.
func Run(ctx context.Context, store storage.Storage, opts Options) error {
	if opts.NumUsers <= 0 {
		return nil
	}
	f := NewFactory(store)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, u)
	}

	for i, u := range users {
		for j := 0; j < opts.ListingsPerUser; j++ {
			if _, err := f.CreateListing(ctx, u); err != nil {
				return fmt.Errorf("seed listing for %s: %w", u.Username, err)
			}
		}
		if opts.RoommateShare > 0 && float64(i) < float64(len(users))*opts.RoommateShare {
			if _, err := f.CreateRoommateProfile(ctx, u); err != nil {
				return fmt.Errorf("seed roommate profile for %s: %w", u.Username, err)
			}
		}
	}

	// Message threads between neighboring users so conversations have
	// traffic in both directions.
	for i := 0; i+1 < len(users); i += 2 {
		a, b := users[i], users[i+1]
		for j := 0; j < opts.MessagesPerPairing; j++ {
			sender, receiver := a, b
			if j%2 == 1 {
				sender, receiver = b, a
			}
			if _, err := f.CreateMessage(ctx, sender, receiver); err != nil {
				return fmt.Errorf("seed message between %s and %s: %w", a.Username, b.Username, err)
			}
		}
	}

	log.Printf("Seeded %d users with listings, roommate profiles, and messages", len(users))
	return nil
}
