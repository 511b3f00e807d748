package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/models"
	"campusmarket/internal/storage/memstore"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func validListingInput() NewListingInput {
	return NewListingInput{
		Title:       "Calculus textbook",
		Description: "Barely used, 4th edition.",
		Price:       intp(40),
		Category:    "Textbooks",
		Condition:   models.ConditionGood,
		UserID:      "user-1",
		University:  "State University",
	}
}

func TestListingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults and normalization", func(t *testing.T) {
		svc := NewListingService(memstore.New())

		listing, err := svc.Create(ctx, validListingInput())
		require.NoError(t, err)
		assert.True(t, listing.IsActive)
		assert.Equal(t, "textbooks", listing.Category)
		assert.NotEmpty(t, listing.ID)
		assert.False(t, listing.CreatedAt.IsZero())
	})

	t.Run("Notes category and hyphenated like-new accepted", func(t *testing.T) {
		svc := NewListingService(memstore.New())

		in := validListingInput()
		in.Category = "notes"
		in.Condition = "like-new"
		listing, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, models.CategoryNotes, listing.Category)
		assert.Equal(t, models.ConditionLikeNew, listing.Condition)
	})

	t.Run("Underscore condition input stores hyphenated", func(t *testing.T) {
		svc := NewListingService(memstore.New())

		in := validListingInput()
		in.Condition = "Like_New"
		listing, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "like-new", listing.Condition)
	})

	t.Run("Explicit inactive create is honored", func(t *testing.T) {
		svc := NewListingService(memstore.New())

		in := validListingInput()
		in.IsActive = boolp(false)
		listing, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.False(t, listing.IsActive)
	})

	t.Run("Validation failures", func(t *testing.T) {
		svc := NewListingService(memstore.New())

		tests := []struct {
			name    string
			mutate  func(*NewListingInput)
			wantMsg string
		}{
			{"Missing user id", func(in *NewListingInput) { in.UserID = "" }, "User ID required"},
			{"Missing title", func(in *NewListingInput) { in.Title = "" }, ""},
			{"Missing price", func(in *NewListingInput) { in.Price = nil }, ""},
			{"Negative price", func(in *NewListingInput) { in.Price = intp(-3) }, ""},
			{"Unknown category", func(in *NewListingInput) { in.Category = "vehicles" }, ""},
			{"Unknown condition", func(in *NewListingInput) { in.Condition = "mint" }, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validListingInput()
				tt.mutate(&in)
				_, err := svc.Create(ctx, in)
				require.Error(t, err)

				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, appErr.Message)
				}
			})
		}
	})
}

func TestListingService_BrowseAndOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewListingService(memstore.New())

	_, err := svc.Create(ctx, validListingInput())
	require.NoError(t, err)

	lamp := validListingInput()
	lamp.Title = "Desk lamp"
	lamp.Category = "furniture"
	_, err = svc.Create(ctx, lamp)
	require.NoError(t, err)

	sold := validListingInput()
	sold.Title = "Old bike"
	sold.IsActive = boolp(false)
	_, err = svc.Create(ctx, sold)
	require.NoError(t, err)

	t.Run("Browse shows active only", func(t *testing.T) {
		listings, err := svc.Browse(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, listings, 2)
	})

	t.Run("Browse filter normalizes category case", func(t *testing.T) {
		listings, err := svc.Browse(ctx, "FURNITURE", "")
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, "Desk lamp", listings[0].Title)
	})

	t.Run("Browse with no matches returns empty list, not null", func(t *testing.T) {
		listings, err := svc.Browse(ctx, "clothing", "")
		require.NoError(t, err)
		assert.NotNil(t, listings)
		assert.Empty(t, listings)
	})

	t.Run("Owner view includes inactive", func(t *testing.T) {
		listings, err := svc.ListByUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, listings, 3)
	})
}

func TestListingService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewListingService(memstore.New())

	listing, err := svc.Create(ctx, validListingInput())
	require.NoError(t, err)

	t.Run("Partial update", func(t *testing.T) {
		updated, err := svc.Update(ctx, listing.ID, models.ListingPatch{Price: intp(25)})
		require.NoError(t, err)
		assert.Equal(t, 25, updated.Price)
		assert.Equal(t, listing.Title, updated.Title)
	})

	t.Run("Deactivation hides from browse", func(t *testing.T) {
		_, err := svc.Update(ctx, listing.ID, models.ListingPatch{IsActive: boolp(false)})
		require.NoError(t, err)

		listings, err := svc.Browse(ctx, "", "")
		require.NoError(t, err)
		assert.Empty(t, listings)
	})

	t.Run("Update unknown id is not found", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", models.ListingPatch{Price: intp(10)})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("Delete then delete again", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, listing.ID))

		err := svc.Delete(ctx, listing.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
