// Package service implements the marketplace business rules on top of
// the storage layer.
package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"campusmarket/internal/cache"
	"campusmarket/internal/models"
	"campusmarket/internal/observability"
	"campusmarket/internal/storage"
	"campusmarket/internal/validation"
)

type UserService struct {
	store storage.Storage
}

func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

// RegisterInput is the payload for account creation. Optional profile
// fields may be blank.
type RegisterInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	University string `json:"university"`
	Major      string `json:"major"`
	Year       string `json:"year"`
	Bio        string `json:"bio"`
	Avatar     string `json:"avatar"`
}

func (in *RegisterInput) validate() error {
	if err := validation.Username(in.Username); err != nil {
		return err
	}
	if err := validation.Email(in.Email); err != nil {
		return err
	}
	if err := validation.Password(in.Password); err != nil {
		return err
	}
	for field, value := range map[string]string{
		"firstName":  in.FirstName,
		"lastName":   in.LastName,
		"university": in.University,
	} {
		if err := validation.Required(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Register creates a new account. Usernames and emails are unique; a
// collision is a conflict, not a validation failure, so clients can
// prompt for a different value.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already exists")
	}

	existing, err = s.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:   in.Username,
		Email:      in.Email,
		Password:   string(hash),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		University: in.University,
		Major:      in.Major,
		Year:       in.Year,
		Bio:        in.Bio,
		Avatar:     in.Avatar,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// Concurrent registration can still lose the race; the store
		// reports that as a conflict already.
		if _, ok := err.(*models.AppError); ok {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}

	observability.RegistrationsTotal.Inc()
	return user, nil
}

// Login verifies credentials and returns the account. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	return user, nil
}

// GetUser fetches a user by id, serving repeat lookups from cache.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	var cached models.User
	if cache.GetJSON(ctx, cache.UserKey(id), &cached) {
		observability.CacheHits.WithLabelValues("user").Inc()
		return &cached, nil
	}
	observability.CacheMisses.WithLabelValues("user").Inc()

	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}

	cache.SetJSON(ctx, cache.UserKey(id), user, cache.UserTTL)
	return user, nil
}

// UpdateProfile applies a partial profile update. Only supplied fields
// change; the password cannot be modified through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.Username != nil {
		trimmed := strings.TrimSpace(*patch.Username)
		patch.Username = &trimmed
		if err := validation.Username(trimmed); err != nil {
			return nil, err
		}
	}
	if patch.Email != nil {
		trimmed := strings.TrimSpace(*patch.Email)
		patch.Email = &trimmed
		if err := validation.Email(trimmed); err != nil {
			return nil, err
		}
	}

	user, err := s.store.UpdateUser(ctx, id, patch)
	if err != nil {
		// Taking another account's username or email is a conflict,
		// reported by the store on either backend.
		if _, ok := err.(*models.AppError); ok {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}

	cache.InvalidateUser(ctx, id)
	return user, nil
}
