package service

import (
	"context"

	"campusmarket/internal/cache"
	"campusmarket/internal/models"
	"campusmarket/internal/storage"
	"campusmarket/internal/validation"
)

type RoommateService struct {
	store storage.Storage
}

func NewRoommateService(store storage.Storage) *RoommateService {
	return &RoommateService{store: store}
}

// NewRoommateInput is the payload for creating a roommate profile.
type NewRoommateInput struct {
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Preferences []string `json:"preferences"`
	Budget      *int     `json:"budget"`
	MoveInDate  string   `json:"moveInDate"`
	Location    string   `json:"location"`
	ContactInfo string   `json:"contactInfo"`
	IsActive    *bool    `json:"isActive"`
}

// Create validates and stores a roommate profile. A user can hold at
// most one profile; the pre-check here gives a clean error message and
// the storage backend enforces the same rule against races.
func (s *RoommateService) Create(ctx context.Context, in NewRoommateInput) (*models.RoommateProfile, error) {
	if err := validation.Required("userId", in.UserID); err != nil {
		return nil, models.NewValidationError("User ID required")
	}
	if err := validation.Required("title", in.Title); err != nil {
		return nil, err
	}
	if err := validation.Required("description", in.Description); err != nil {
		return nil, err
	}
	if err := validation.Budget(in.Budget); err != nil {
		return nil, err
	}
	if err := validation.ContactInfo(in.ContactInfo); err != nil {
		return nil, err
	}

	existing, err := s.store.GetRoommateProfileByUser(ctx, in.UserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("User already has a roommate profile")
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	profile := &models.RoommateProfile{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Preferences: in.Preferences,
		Budget:      in.Budget,
		MoveInDate:  in.MoveInDate,
		Location:    in.Location,
		ContactInfo: in.ContactInfo,
		IsActive:    isActive,
	}
	if err := s.store.CreateRoommateProfile(ctx, profile); err != nil {
		if _, ok := err.(*models.AppError); ok {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}

	return profile, nil
}

// Get fetches a single roommate profile by id.
func (s *RoommateService) Get(ctx context.Context, id string) (*models.RoommateProfile, error) {
	var cached models.RoommateProfile
	if cache.GetJSON(ctx, cache.RoommateKey(id), &cached) {
		return &cached, nil
	}

	profile, err := s.store.GetRoommateProfile(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Roommate profile", id)
	}

	cache.SetJSON(ctx, cache.RoommateKey(id), profile, cache.RoommateTTL)
	return profile, nil
}

// GetByUser fetches the profile owned by a user.
func (s *RoommateService) GetByUser(ctx context.Context, userID string) (*models.RoommateProfile, error) {
	profile, err := s.store.GetRoommateProfileByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Roommate profile", userID)
	}
	return profile, nil
}

// List returns all active roommate profiles, newest first.
func (s *RoommateService) List(ctx context.Context) ([]models.RoommateProfile, error) {
	profiles, err := s.store.ListRoommateProfiles(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profiles == nil {
		profiles = []models.RoommateProfile{}
	}
	return profiles, nil
}

// Update applies a partial update to a roommate profile.
func (s *RoommateService) Update(ctx context.Context, id string, patch models.RoommatePatch) (*models.RoommateProfile, error) {
	if err := validation.Budget(patch.Budget); err != nil {
		return nil, err
	}
	if patch.ContactInfo != nil {
		if err := validation.ContactInfo(*patch.ContactInfo); err != nil {
			return nil, err
		}
	}

	profile, err := s.store.UpdateRoommateProfile(ctx, id, patch)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Roommate profile", id)
	}

	cache.InvalidateRoommate(ctx, id)
	return profile, nil
}

// Delete removes a roommate profile. Unknown ids report not found.
func (s *RoommateService) Delete(ctx context.Context, id string) error {
	removed, err := s.store.DeleteRoommateProfile(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !removed {
		return models.NewNotFoundError("Roommate profile", id)
	}

	cache.InvalidateRoommate(ctx, id)
	return nil
}
