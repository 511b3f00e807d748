// Package gormstore is the durable Storage implementation backed by
// GORM. It runs against Postgres in production and SQLite for local
// development and tests.
package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"campusmarket/internal/models"
	"campusmarket/internal/storage"
)

// Store wraps a *gorm.DB and implements storage.Storage.
type Store struct {
	db *gorm.DB
}

// New builds a Store over an already-connected GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ storage.Storage = (*Store)(nil)

// isUniqueConstraintError reports whether err is a uniqueness
// violation from Postgres (23505) or SQLite.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}

// Users

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	stamp(&user.ID, &user.CreatedAt)
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				return models.NewConflictError("Email already exists")
			}
			return models.NewConflictError("Username already exists")
		}
		return err
	}
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	updates := map[string]interface{}{}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.University != nil {
		updates["university"] = *patch.University
	}
	if patch.Major != nil {
		updates["major"] = *patch.Major
	}
	if patch.Year != nil {
		updates["year"] = *patch.Year
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.Avatar != nil {
		updates["avatar"] = *patch.Avatar
	}
	user, err := applyUpdate[models.User](ctx, s.db, id, updates)
	if isUniqueConstraintError(err) {
		if strings.Contains(strings.ToLower(err.Error()), "email") {
			return nil, models.NewConflictError("Email already exists")
		}
		return nil, models.NewConflictError("Username already exists")
	}
	return user, err
}

// applyUpdate fetches the row, applies the column updates and returns
// the fresh entity. A missing row yields (nil, nil).
func applyUpdate[T any](ctx context.Context, db *gorm.DB, id string, updates map[string]interface{}) (*T, error) {
	var entity T
	err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return &entity, nil
	}
	if err := db.WithContext(ctx).Model(&entity).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// Listings

func (s *Store) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *Store) ListListings(ctx context.Context, filter storage.ListingFilter) ([]models.Listing, error) {
	q := s.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.University != "" {
		q = q.Where("university = ?", filter.University)
	}
	var listings []models.Listing
	if err := q.Order("created_at DESC, id ASC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *Store) ListListingsByUser(ctx context.Context, userID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) error {
	stamp(&listing.ID, &listing.CreatedAt)
	if listing.Images == nil {
		listing.Images = []string{}
	}
	return s.db.WithContext(ctx).Create(listing).Error
}

func (s *Store) UpdateListing(ctx context.Context, id string, patch models.ListingPatch) (*models.Listing, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Condition != nil {
		updates["condition"] = *patch.Condition
	}
	if patch.Images != nil {
		updates["images"] = datatypes.NewJSONSlice(*patch.Images)
	}
	if patch.University != nil {
		updates["university"] = *patch.University
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	return applyUpdate[models.Listing](ctx, s.db, id, updates)
}

func (s *Store) DeleteListing(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Listing{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Roommate profiles

func (s *Store) GetRoommateProfile(ctx context.Context, id string) (*models.RoommateProfile, error) {
	var profile models.RoommateProfile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) GetRoommateProfileByUser(ctx context.Context, userID string) (*models.RoommateProfile, error) {
	var profile models.RoommateProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) ListRoommateProfiles(ctx context.Context) ([]models.RoommateProfile, error) {
	var profiles []models.RoommateProfile
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *Store) CreateRoommateProfile(ctx context.Context, profile *models.RoommateProfile) error {
	stamp(&profile.ID, &profile.CreatedAt)
	if profile.Preferences == nil {
		profile.Preferences = []string{}
	}
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already has a roommate profile")
		}
		return err
	}
	return nil
}

func (s *Store) UpdateRoommateProfile(ctx context.Context, id string, patch models.RoommatePatch) (*models.RoommateProfile, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Preferences != nil {
		updates["preferences"] = datatypes.NewJSONSlice(*patch.Preferences)
	}
	if patch.Budget != nil {
		updates["budget"] = *patch.Budget
	}
	if patch.MoveInDate != nil {
		updates["move_in_date"] = *patch.MoveInDate
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.ContactInfo != nil {
		updates["contact_info"] = *patch.ContactInfo
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	return applyUpdate[models.RoommateProfile](ctx, s.db, id, updates)
}

func (s *Store) DeleteRoommateProfile(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.RoommateProfile{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Messages

func (s *Store) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *Store) ListMessagesForUser(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Store) GetConversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Store) CreateMessage(ctx context.Context, message *models.Message) error {
	stamp(&message.ID, &message.CreatedAt)
	return s.db.WithContext(ctx).Create(message).Error
}

func (s *Store) MarkMessageRead(ctx context.Context, id string) (*models.Message, error) {
	return applyUpdate[models.Message](ctx, s.db, id, map[string]interface{}{"is_read": true})
}

// Lifecycle

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
