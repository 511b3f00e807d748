// Package storage defines the persistence contract for the
// marketplace. Two implementations exist: memstore, an in-memory
// store used for tests and fast local development, and gormstore,
// the durable store backed by GORM. Both must behave identically as
// observed through this interface.
package storage

import (
	"context"

	"campusmarket/internal/models"
)

// ListingFilter narrows ListListings. Zero-value fields match
// everything. Category is compared in canonical lowercase.
type ListingFilter struct {
	Category   string
	University string
}

// Storage is the persistence seam for all marketplace entities.
//
// Lookup methods return (nil, nil) when no row matches; errors are
// reserved for infrastructure failures. Create methods assign ID and
// CreatedAt when the caller left them zero. Update methods apply only
// the non-nil patch fields and return the stored entity, or (nil, nil)
// when the id is unknown. Delete methods report whether a row was
// removed and are idempotent.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)

	// Listings
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	ListListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	ListListingsByUser(ctx context.Context, userID string) ([]models.Listing, error)
	CreateListing(ctx context.Context, listing *models.Listing) error
	UpdateListing(ctx context.Context, id string, patch models.ListingPatch) (*models.Listing, error)
	DeleteListing(ctx context.Context, id string) (bool, error)

	// Roommate profiles
	GetRoommateProfile(ctx context.Context, id string) (*models.RoommateProfile, error)
	GetRoommateProfileByUser(ctx context.Context, userID string) (*models.RoommateProfile, error)
	ListRoommateProfiles(ctx context.Context) ([]models.RoommateProfile, error)
	CreateRoommateProfile(ctx context.Context, profile *models.RoommateProfile) error
	UpdateRoommateProfile(ctx context.Context, id string, patch models.RoommatePatch) (*models.RoommateProfile, error)
	DeleteRoommateProfile(ctx context.Context, id string) (bool, error)

	// Messages
	GetMessage(ctx context.Context, id string) (*models.Message, error)
	ListMessagesForUser(ctx context.Context, userID string) ([]models.Message, error)
	GetConversation(ctx context.Context, userA, userB string) ([]models.Message, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	MarkMessageRead(ctx context.Context, id string) (*models.Message, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
