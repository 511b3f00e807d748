// Package storagetest holds a behavioral test suite that every
// storage.Storage implementation must pass. memstore and gormstore
// both run it, which is what keeps the two backends interchangeable.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/models"
	"campusmarket/internal/storage"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) storage.Storage

// Run exercises the full storage contract against stores produced by
// the factory.
func Run(t *testing.T, newStore Factory) {
	t.Run("UserLifecycle", func(t *testing.T) { testUserLifecycle(t, newStore(t)) })
	t.Run("UserUniqueness", func(t *testing.T) { testUserUniqueness(t, newStore(t)) })
	t.Run("UserPartialUpdate", func(t *testing.T) { testUserPartialUpdate(t, newStore(t)) })
	t.Run("UserUpdateUniqueness", func(t *testing.T) { testUserUpdateUniqueness(t, newStore(t)) })
	t.Run("ListingDefaultsAndFilters", func(t *testing.T) { testListingDefaultsAndFilters(t, newStore(t)) })
	t.Run("ListingOwnerIncludesInactive", func(t *testing.T) { testListingOwnerIncludesInactive(t, newStore(t)) })
	t.Run("ListingDeleteIdempotent", func(t *testing.T) { testListingDeleteIdempotent(t, newStore(t)) })
	t.Run("RoommateProfileUniquePerUser", func(t *testing.T) { testRoommateUniquePerUser(t, newStore(t)) })
	t.Run("RoommatePreferencesRoundTrip", func(t *testing.T) { testRoommatePreferences(t, newStore(t)) })
	t.Run("ConversationSymmetry", func(t *testing.T) { testConversationSymmetry(t, newStore(t)) })
	t.Run("MessageReadFlag", func(t *testing.T) { testMessageReadFlag(t, newStore(t)) })
	t.Run("MissingRowsReturnNil", func(t *testing.T) { testMissingRows(t, newStore(t)) })
}

func newUser(suffix string) *models.User {
	return &models.User{
		Username:   "student_" + suffix,
		Email:      suffix + "@campus.edu",
		Password:   "$2a$10$notarealhashnotarealhashnotarealhash",
		FirstName:  "Jordan",
		LastName:   "Reyes",
		University: "State University",
	}
}

func testUserLifecycle(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	user := newUser("alpha")
	require.NoError(t, store.CreateUser(ctx, user))
	require.NotEmpty(t, user.ID)
	require.False(t, user.CreatedAt.IsZero())

	byID, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, user.Username, byID.Username)

	byName, err := store.GetUserByUsername(ctx, user.Username)
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := store.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func testUserUniqueness(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newUser("bravo")))

	dupUsername := newUser("charlie")
	dupUsername.Username = "student_bravo"
	err := store.CreateUser(ctx, dupUsername)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	dupEmail := newUser("delta")
	dupEmail.Email = "bravo@campus.edu"
	err = store.CreateUser(ctx, dupEmail)
	require.Error(t, err)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func testUserPartialUpdate(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	user := newUser("echo")
	user.Major = "Physics"
	require.NoError(t, store.CreateUser(ctx, user))

	bio := "Third year, selling old lab gear."
	updated, err := store.UpdateUser(ctx, user.ID, models.UserPatch{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "Physics", updated.Major)
	assert.Equal(t, user.Username, updated.Username)

	missing, err := store.UpdateUser(ctx, "no-such-id", models.UserPatch{Bio: &bio})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func seedListing(t *testing.T, store storage.Storage, userID string, mutate func(*models.Listing)) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		Title:       "Calculus textbook",
		Description: "Barely used, 4th edition.",
		Price:       40,
		Category:    models.CategoryTextbooks,
		Condition:   models.ConditionGood,
		UserID:      userID,
		University:  "State University",
		IsActive:    true,
	}
	if mutate != nil {
		mutate(listing)
	}
	require.NoError(t, store.CreateListing(context.Background(), listing))
	return listing
}

func testUserUpdateUniqueness(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	taken := newUser("november")
	require.NoError(t, store.CreateUser(ctx, taken))
	mover := newUser("oscar")
	require.NoError(t, store.CreateUser(ctx, mover))

	username := taken.Username
	_, err := store.UpdateUser(ctx, mover.ID, models.UserPatch{Username: &username})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	email := taken.Email
	_, err = store.UpdateUser(ctx, mover.ID, models.UserPatch{Email: &email})
	require.Error(t, err)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// Re-submitting your own current username is not a collision.
	own := mover.Username
	updated, err := store.UpdateUser(ctx, mover.ID, models.UserPatch{Username: &own})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, own, updated.Username)
}

func testListingDefaultsAndFilters(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	user := newUser("foxtrot")
	require.NoError(t, store.CreateUser(ctx, user))

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	seedListing(t, store, user.ID, func(l *models.Listing) { l.CreatedAt = base })
	seedListing(t, store, user.ID, func(l *models.Listing) {
		l.Title = "Desk lamp"
		l.Category = models.CategoryFurniture
		l.CreatedAt = base.Add(time.Hour)
	})
	seedListing(t, store, user.ID, func(l *models.Listing) {
		l.Title = "Retired bike"
		l.IsActive = false
		l.CreatedAt = base.Add(2 * time.Hour)
	})
	seedListing(t, store, user.ID, func(l *models.Listing) {
		l.Title = "City campus couch"
		l.Category = models.CategoryFurniture
		l.University = "City College"
		l.CreatedAt = base.Add(3 * time.Hour)
	})

	all, err := store.ListListings(ctx, storage.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, l := range all {
		assert.True(t, l.IsActive)
	}
	// newest first
	assert.Equal(t, "City campus couch", all[0].Title)
	assert.Equal(t, "Calculus textbook", all[2].Title)
	assert.NotNil(t, all[0].Images)

	furniture, err := store.ListListings(ctx, storage.ListingFilter{Category: models.CategoryFurniture})
	require.NoError(t, err)
	require.Len(t, furniture, 2)

	both, err := store.ListListings(ctx, storage.ListingFilter{
		Category:   models.CategoryFurniture,
		University: "City College",
	})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "City campus couch", both[0].Title)

	none, err := store.ListListings(ctx, storage.ListingFilter{Category: models.CategoryClothing})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testListingOwnerIncludesInactive(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	user := newUser("golf")
	require.NoError(t, store.CreateUser(ctx, user))

	active := seedListing(t, store, user.ID, nil)
	inactive := seedListing(t, store, user.ID, func(l *models.Listing) {
		l.Title = "Sold already"
		l.IsActive = false
	})

	mine, err := store.ListListingsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	ids := []string{mine[0].ID, mine[1].ID}
	assert.Contains(t, ids, active.ID)
	assert.Contains(t, ids, inactive.ID)

	public, err := store.ListListings(ctx, storage.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, active.ID, public[0].ID)
}

func testListingDeleteIdempotent(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	user := newUser("hotel")
	require.NoError(t, store.CreateUser(ctx, user))
	listing := seedListing(t, store, user.ID, nil)

	removed, err := store.DeleteListing(ctx, listing.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	gone, err := store.GetListing(ctx, listing.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	removedAgain, err := store.DeleteListing(ctx, listing.ID)
	require.NoError(t, err)
	assert.False(t, removedAgain)
}

func testRoommateUniquePerUser(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	user := newUser("india")
	require.NoError(t, store.CreateUser(ctx, user))

	profile := &models.RoommateProfile{
		UserID:      user.ID,
		Title:       "Looking for a quiet roommate",
		Description: "Two bedroom near campus.",
		IsActive:    true,
	}
	require.NoError(t, store.CreateRoommateProfile(ctx, profile))

	second := &models.RoommateProfile{
		UserID:      user.ID,
		Title:       "Second try",
		Description: "Should not be allowed.",
		IsActive:    true,
	}
	err := store.CreateRoommateProfile(ctx, second)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	byUser, err := store.GetRoommateProfileByUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byUser)
	assert.Equal(t, profile.ID, byUser.ID)
}

func testRoommatePreferences(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	user := newUser("juliet")
	require.NoError(t, store.CreateUser(ctx, user))

	budget := 800
	profile := &models.RoommateProfile{
		UserID:      user.ID,
		Title:       "Early riser seeks same",
		Description: "Shared apartment downtown.",
		Preferences: []string{"non-smoker", "early-riser"},
		Budget:      &budget,
		IsActive:    true,
	}
	require.NoError(t, store.CreateRoommateProfile(ctx, profile))

	stored, err := store.GetRoommateProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"non-smoker", "early-riser"}, []string(stored.Preferences))
	require.NotNil(t, stored.Budget)
	assert.Equal(t, 800, *stored.Budget)

	prefs := []string{"pet-friendly"}
	updated, err := store.UpdateRoommateProfile(ctx, profile.ID, models.RoommatePatch{Preferences: &prefs})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, []string{"pet-friendly"}, []string(updated.Preferences))
	require.NotNil(t, updated.Budget)
	assert.Equal(t, 800, *updated.Budget)

	inactive := false
	updated, err = store.UpdateRoommateProfile(ctx, profile.ID, models.RoommatePatch{IsActive: &inactive})
	require.NoError(t, err)
	require.NotNil(t, updated)

	visible, err := store.ListRoommateProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func testConversationSymmetry(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	alice := newUser("kilo")
	bob := newUser("lima")
	carol := newUser("mike")
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.CreateUser(ctx, bob))
	require.NoError(t, store.CreateUser(ctx, carol))

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	send := func(from, to, content string, at time.Time) {
		require.NoError(t, store.CreateMessage(ctx, &models.Message{
			SenderID:   from,
			ReceiverID: to,
			Content:    content,
			CreatedAt:  at,
		}))
	}
	send(alice.ID, bob.ID, "Is the bike still available?", base)
	send(bob.ID, alice.ID, "Yes, want to see it?", base.Add(time.Minute))
	send(alice.ID, bob.ID, "Tomorrow works.", base.Add(2*time.Minute))
	send(carol.ID, alice.ID, "Unrelated thread.", base.Add(3*time.Minute))

	ab, err := store.GetConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, ab, 3)
	assert.Equal(t, "Is the bike still available?", ab[0].Content)
	assert.Equal(t, "Tomorrow works.", ab[2].Content)

	ba, err := store.GetConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, ab, ba)

	inbox, err := store.ListMessagesForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 4)
	assert.Equal(t, "Unrelated thread.", inbox[3].Content)
}

func testMessageReadFlag(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	alice := newUser("november")
	bob := newUser("oscar")
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.CreateUser(ctx, bob))

	msg := &models.Message{
		SenderID:   alice.ID,
		ReceiverID: bob.ID,
		Content:    "Ping",
	}
	require.NoError(t, store.CreateMessage(ctx, msg))
	assert.False(t, msg.IsRead)

	read, err := store.MarkMessageRead(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, read)
	assert.True(t, read.IsRead)

	again, err := store.MarkMessageRead(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.True(t, again.IsRead)

	missing, err := store.MarkMessageRead(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testMissingRows(t *testing.T, store storage.Storage) {
	defer store.Close()
	ctx := context.Background()

	user, err := store.GetUser(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, user)

	byName, err := store.GetUserByUsername(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, byName)

	listing, err := store.GetListing(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, listing)

	profile, err := store.GetRoommateProfileByUser(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, profile)

	message, err := store.GetMessage(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, message)

	conversation, err := store.GetConversation(ctx, "a", "b")
	require.NoError(t, err)
	assert.Empty(t, conversation)
}
