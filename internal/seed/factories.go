// Package seed creates demo data for development and testing. It goes
// through the storage layer, so it works against any backend.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusmarket/internal/models"
	"campusmarket/internal/storage"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

var universities = []string{
	"State University",
	"Tech University",
	"City College",
	"Lakeside University",
	"Northern Institute",
}

// Factory builds domain entities and persists them through the
// storage layer.
type Factory struct {
	store storage.Storage
}

// NewFactory creates a Factory bound to the given store.
func NewFactory(store storage.Storage) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{store: store}
}

// CreateUser persists a sample user. Optional override functions may
// modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, gofakeit.Number(10, 99)))

	user := &models.User{
		Username:   username,
		Email:      fmt.Sprintf("%s@%s", username, "students.edu"),
		Password:   string(hash),
		FirstName:  first,
		LastName:   last,
		University: universities[gofakeit.Number(0, len(universities)-1)],
		Major:      gofakeit.JobTitle(),
		Year:       []string{"freshman", "sophomore", "junior", "senior"}[gofakeit.Number(0, 3)],
		Bio:        gofakeit.Sentence(10),
		Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateListing persists a sample listing owned by the given user.
func (f *Factory) CreateListing(ctx context.Context, owner *models.User, overrides ...func(*models.Listing)) (*models.Listing, error) {
	category := models.ListingCategories[gofakeit.Number(0, len(models.ListingCategories)-1)]
	listing := &models.Listing{
		Title:       gofakeit.ProductName(),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Price:       gofakeit.Number(5, 500),
		Category:    category,
		Condition:   models.ListingConditions[gofakeit.Number(0, len(models.ListingConditions)-1)],
		Images:      []string{fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID())},
		UserID:      owner.ID,
		University:  owner.University,
		IsActive:    true,
	}
	for _, override := range overrides {
		override(listing)
	}
	if err := f.store.CreateListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// CreateRoommateProfile persists a sample roommate profile for the
// given user. Each user can hold only one.
func (f *Factory) CreateRoommateProfile(ctx context.Context, owner *models.User, overrides ...func(*models.RoommateProfile)) (*models.RoommateProfile, error) {
	budget := gofakeit.Number(400, 1500)
	profile := &models.RoommateProfile{
		UserID:      owner.ID,
		Title:       fmt.Sprintf("Roommate wanted near %s", owner.University),
		Description: gofakeit.Paragraph(1, 2, 10, " "),
		Preferences: []string{"non-smoker", "quiet", "clean"}[:gofakeit.Number(1, 3)],
		Budget:      &budget,
		MoveInDate:  gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 6, 0)).Format("2006-01-02"),
		Location:    gofakeit.City(),
		ContactInfo: owner.Email,
		IsActive:    true,
	}
	for _, override := range overrides {
		override(profile)
	}
	if err := f.store.CreateRoommateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateMessage persists a sample message between two users.
func (f *Factory) CreateMessage(ctx context.Context, sender, receiver *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	msg := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    gofakeit.Question(),
		IsRead:     gofakeit.Bool(),
	}
	for _, override := range overrides {
		override(msg)
	}
	if err := f.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
