package service

import (
	"context"

	"campusmarket/internal/cache"
	"campusmarket/internal/models"
	"campusmarket/internal/observability"
	"campusmarket/internal/storage"
	"campusmarket/internal/validation"
)

type ListingService struct {
	store storage.Storage
}

func NewListingService(store storage.Storage) *ListingService {
	return &ListingService{store: store}
}

// NewListingInput is the payload for creating a listing. IsActive
// defaults to true when omitted.
type NewListingInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *int     `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Images      []string `json:"images"`
	UserID      string   `json:"userId"`
	University  string   `json:"university"`
	IsActive    *bool    `json:"isActive"`
}

// Create validates and stores a new listing.
func (s *ListingService) Create(ctx context.Context, in NewListingInput) (*models.Listing, error) {
	if err := validation.Required("userId", in.UserID); err != nil {
		return nil, models.NewValidationError("User ID required")
	}
	if err := validation.Required("title", in.Title); err != nil {
		return nil, err
	}
	if err := validation.Required("description", in.Description); err != nil {
		return nil, err
	}
	if err := validation.Required("university", in.University); err != nil {
		return nil, err
	}
	if in.Price == nil {
		return nil, models.NewValidationError("price is required")
	}
	if err := validation.Price(*in.Price); err != nil {
		return nil, err
	}

	category := models.NormalizeCategory(in.Category)
	if err := validation.Category(category); err != nil {
		return nil, err
	}
	condition := models.NormalizeCondition(in.Condition)
	if err := validation.Condition(condition); err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	listing := &models.Listing{
		Title:       in.Title,
		Description: in.Description,
		Price:       *in.Price,
		Category:    category,
		Condition:   condition,
		Images:      in.Images,
		UserID:      in.UserID,
		University:  in.University,
		IsActive:    isActive,
	}
	if err := s.store.CreateListing(ctx, listing); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.ListingsCreated.WithLabelValues(category).Inc()
	return listing, nil
}

// Get fetches a single listing by id, serving repeat lookups from cache.
func (s *ListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	var cached models.Listing
	if cache.GetJSON(ctx, cache.ListingKey(id), &cached) {
		observability.CacheHits.WithLabelValues("listing").Inc()
		return &cached, nil
	}
	observability.CacheMisses.WithLabelValues("listing").Inc()

	listing, err := s.store.GetListing(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if listing == nil {
		return nil, models.NewNotFoundError("Listing", id)
	}

	cache.SetJSON(ctx, cache.ListingKey(id), listing, cache.ListingTTL)
	return listing, nil
}

// Browse returns active listings, optionally narrowed by category and
// university. Category matching is canonical lowercase.
func (s *ListingService) Browse(ctx context.Context, category, university string) ([]models.Listing, error) {
	filter := storage.ListingFilter{
		Category:   models.NormalizeCategory(category),
		University: university,
	}
	listings, err := s.store.ListListings(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

// ListByUser returns every listing a user owns, inactive ones included.
func (s *ListingService) ListByUser(ctx context.Context, userID string) ([]models.Listing, error) {
	listings, err := s.store.ListListingsByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

// Update applies a partial update to a listing.
func (s *ListingService) Update(ctx context.Context, id string, patch models.ListingPatch) (*models.Listing, error) {
	if patch.Category != nil {
		category := models.NormalizeCategory(*patch.Category)
		patch.Category = &category
		if err := validation.Category(category); err != nil {
			return nil, err
		}
	}
	if patch.Condition != nil {
		condition := models.NormalizeCondition(*patch.Condition)
		patch.Condition = &condition
		if err := validation.Condition(condition); err != nil {
			return nil, err
		}
	}
	if patch.Price != nil {
		if err := validation.Price(*patch.Price); err != nil {
			return nil, err
		}
	}

	listing, err := s.store.UpdateListing(ctx, id, patch)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if listing == nil {
		return nil, models.NewNotFoundError("Listing", id)
	}

	cache.InvalidateListing(ctx, id)
	return listing, nil
}

// Delete removes a listing. Unknown ids report not found.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	removed, err := s.store.DeleteListing(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !removed {
		return models.NewNotFoundError("Listing", id)
	}

	cache.InvalidateListing(ctx, id)
	return nil
}
