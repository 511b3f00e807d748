// Package memstore is the in-memory Storage implementation. It backs
// tests and local development and mirrors the durable gormstore
// behavior exactly, including orderings and uniqueness conflicts.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"campusmarket/internal/models"
	"campusmarket/internal/storage"
)

// Store holds all entities in maps guarded by a single RWMutex.
// Values are stored by value and copied on the way in and out so
// callers can never mutate shared state through returned pointers.
type Store struct {
	mu sync.RWMutex

	users     map[string]models.User
	listings  map[string]models.Listing
	roommates map[string]models.RoommateProfile
	messages  map[string]models.Message
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		users:     make(map[string]models.User),
		listings:  make(map[string]models.Listing),
		roommates: make(map[string]models.RoommateProfile),
		messages:  make(map[string]models.Message),
	}
}

var _ storage.Storage = (*Store)(nil)

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
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return models.NewConflictError("Username already exists")
		}
		if u.Email == user.Email {
			return models.NewConflictError("Email already exists")
		}
	}
	stamp(&user.ID, &user.CreatedAt)
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	// Uniqueness holds on the update path too, same as the unique
	// indexes in the durable store.
	for otherID, other := range s.users {
		if otherID == id {
			continue
		}
		if patch.Username != nil && other.Username == *patch.Username {
			return nil, models.NewConflictError("Username already exists")
		}
		if patch.Email != nil && other.Email == *patch.Email {
			return nil, models.NewConflictError("Email already exists")
		}
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.University != nil {
		u.University = *patch.University
	}
	if patch.Major != nil {
		u.Major = *patch.Major
	}
	if patch.Year != nil {
		u.Year = *patch.Year
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	s.users[id] = u
	return &u, nil
}

// Listings

func (s *Store) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.listings[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (s *Store) ListListings(ctx context.Context, filter storage.ListingFilter) ([]models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Listing
	for _, l := range s.listings {
		if !l.IsActive {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.University != "" && l.University != filter.University {
			continue
		}
		out = append(out, l)
	}
	sortListingsNewestFirst(out)
	return out, nil
}

func (s *Store) ListListingsByUser(ctx context.Context, userID string) ([]models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Listing
	for _, l := range s.listings {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sortListingsNewestFirst(out)
	return out, nil
}

func sortListingsNewestFirst(listings []models.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if !listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		}
		return listings[i].ID < listings[j].ID
	})
}

func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&listing.ID, &listing.CreatedAt)
	if listing.Images == nil {
		listing.Images = []string{}
	}
	s.listings[listing.ID] = *listing
	return nil
}

func (s *Store) UpdateListing(ctx context.Context, id string, patch models.ListingPatch) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		l.Title = *patch.Title
	}
	if patch.Description != nil {
		l.Description = *patch.Description
	}
	if patch.Price != nil {
		l.Price = *patch.Price
	}
	if patch.Category != nil {
		l.Category = *patch.Category
	}
	if patch.Condition != nil {
		l.Condition = *patch.Condition
	}
	if patch.Images != nil {
		l.Images = append([]string(nil), *patch.Images...)
	}
	if patch.University != nil {
		l.University = *patch.University
	}
	if patch.IsActive != nil {
		l.IsActive = *patch.IsActive
	}
	s.listings[id] = l
	return &l, nil
}

func (s *Store) DeleteListing(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[id]; !ok {
		return false, nil
	}
	delete(s.listings, id)
	return true, nil
}

// Roommate profiles

func (s *Store) GetRoommateProfile(ctx context.Context, id string) (*models.RoommateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.roommates[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Store) GetRoommateProfileByUser(ctx context.Context, userID string) (*models.RoommateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.roommates {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *Store) ListRoommateProfiles(ctx context.Context) ([]models.RoommateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.RoommateProfile
	for _, p := range s.roommates {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreateRoommateProfile(ctx context.Context, profile *models.RoommateProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.roommates {
		if p.UserID == profile.UserID {
			return models.NewConflictError("User already has a roommate profile")
		}
	}
	stamp(&profile.ID, &profile.CreatedAt)
	if profile.Preferences == nil {
		profile.Preferences = []string{}
	}
	s.roommates[profile.ID] = *profile
	return nil
}

func (s *Store) UpdateRoommateProfile(ctx context.Context, id string, patch models.RoommatePatch) (*models.RoommateProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.roommates[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Preferences != nil {
		p.Preferences = append([]string(nil), *patch.Preferences...)
	}
	if patch.Budget != nil {
		budget := *patch.Budget
		p.Budget = &budget
	}
	if patch.MoveInDate != nil {
		p.MoveInDate = *patch.MoveInDate
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.ContactInfo != nil {
		p.ContactInfo = *patch.ContactInfo
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	s.roommates[id] = p
	return &p, nil
}

func (s *Store) DeleteRoommateProfile(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roommates[id]; !ok {
		return false, nil
	}
	delete(s.roommates, id)
	return true, nil
}

// Messages

func (s *Store) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.messages[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) ListMessagesForUser(ctx context.Context, userID string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	sortMessagesOldestFirst(out)
	return out, nil
}

func (s *Store) GetConversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	sortMessagesOldestFirst(out)
	return out, nil
}

func sortMessagesOldestFirst(messages []models.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})
}

func (s *Store) CreateMessage(ctx context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&message.ID, &message.CreatedAt)
	s.messages[message.ID] = *message
	return nil
}

func (s *Store) MarkMessageRead(ctx context.Context, id string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, nil
	}
	m.IsRead = true
	s.messages[id] = m
	return &m, nil
}

// Lifecycle

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }
