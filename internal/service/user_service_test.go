package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campusmarket/internal/models"
	"campusmarket/internal/storage/memstore"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:   "jordan_r",
		Email:      "jordan@campus.edu",
		Password:   "hunter22",
		FirstName:  "Jordan",
		LastName:   "Reyes",
		University: "State University",
		Major:      "Physics",
	}
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Hashes the password", func(t *testing.T) {
		svc := NewUserService(memstore.New())

		user, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)

		assert.NotEqual(t, "hunter22", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
	})

	t.Run("Rejects duplicate username", func(t *testing.T) {
		svc := NewUserService(memstore.New())
		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		dup := validRegisterInput()
		dup.Email = "other@campus.edu"
		_, err = svc.Register(ctx, dup)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
		assert.Equal(t, "Username already exists", appErr.Message)
	})

	t.Run("Rejects duplicate email", func(t *testing.T) {
		svc := NewUserService(memstore.New())
		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		dup := validRegisterInput()
		dup.Username = "different_name"
		_, err = svc.Register(ctx, dup)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
		assert.Equal(t, "Email already exists", appErr.Message)
	})

	t.Run("Rejects invalid input", func(t *testing.T) {
		svc := NewUserService(memstore.New())

		tests := []struct {
			name   string
			mutate func(*RegisterInput)
		}{
			{"Short username", func(in *RegisterInput) { in.Username = "ab" }},
			{"Bad email", func(in *RegisterInput) { in.Email = "nope" }},
			{"Short password", func(in *RegisterInput) { in.Password = "abc" }},
			{"Missing first name", func(in *RegisterInput) { in.FirstName = "" }},
			{"Missing university", func(in *RegisterInput) { in.University = "" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validRegisterInput()
				tt.mutate(&in)
				_, err := svc.Register(ctx, in)
				require.Error(t, err)

				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			})
		}
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memstore.New())
	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	t.Run("Valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "jordan_r", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "jordan_r", user.Username)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "jordan_r", "wrong")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("Unknown user looks the same as wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "hunter22")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("Blank credentials are a validation failure", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestUserService_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memstore.New())
	user, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	t.Run("Get returns the user", func(t *testing.T) {
		got, err := svc.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Username, got.Username)
	})

	t.Run("Get unknown id is not found", func(t *testing.T) {
		_, err := svc.GetUser(ctx, "missing")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("Partial update leaves other fields alone", func(t *testing.T) {
		bio := "Selling textbooks before graduation."
		updated, err := svc.UpdateProfile(ctx, user.ID, models.UserPatch{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, bio, updated.Bio)
		assert.Equal(t, "Physics", updated.Major)
	})

	t.Run("Update validates supplied fields", func(t *testing.T) {
		bad := "not-an-email"
		_, err := svc.UpdateProfile(ctx, user.ID, models.UserPatch{Email: &bad})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("Update to a taken username is a conflict", func(t *testing.T) {
		other := validRegisterInput()
		other.Username = "taylor_m"
		other.Email = "taylor@campus.edu"
		_, err := svc.Register(ctx, other)
		require.NoError(t, err)

		taken := "taylor_m"
		_, err = svc.UpdateProfile(ctx, user.ID, models.UserPatch{Username: &taken})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("Update unknown id is not found", func(t *testing.T) {
		bio := "whatever"
		_, err := svc.UpdateProfile(ctx, "missing", models.UserPatch{Bio: &bio})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
