package gormstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campusmarket/internal/models"
	"campusmarket/internal/storage"
	"campusmarket/internal/storage/storagetest"
)

func setupSQLiteStore(t *testing.T) storage.Storage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.RoommateProfile{},
		&models.Message{},
	))
	return New(db)
}

func TestGormstoreContract(t *testing.T) {
	storagetest.Run(t, setupSQLiteStore)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

// Postgres reports uniqueness violations as SQLSTATE 23505. The store
// must surface those as CONFLICT app errors, not internal errors.
func TestCreateUserTranslatesUniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	store := New(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		driverErr error
		wantMsg   string
	}{
		{
			name:      "username collision",
			driverErr: errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`),
			wantMsg:   "Username already exists",
		},
		{
			name:      "email collision",
			driverErr: errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`),
			wantMsg:   "Email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
				WillReturnError(tt.driverErr)
			mock.ExpectRollback()

			err := store.CreateUser(ctx, &models.User{
				Username:   "dup",
				Email:      "dup@campus.edu",
				Password:   "hash",
				FirstName:  "Du",
				LastName:   "Plicate",
				University: "State University",
			})
			require.Error(t, err)

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "CONFLICT", appErr.Code)
			assert.Equal(t, tt.wantMsg, appErr.Message)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateRoommateProfileTranslatesUniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	store := New(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "roommate_profiles"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_roommate_profiles_user_id" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := store.CreateRoommateProfile(ctx, &models.RoommateProfile{
		UserID:      "some-user",
		Title:       "dup profile",
		Description: "second profile for the same user",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInfrastructureErrorsPassThrough(t *testing.T) {
	db, mock := setupMockDB(t)
	store := New(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnError(errors.New("connection refused"))

	user, err := store.GetUser(ctx, "any")
	assert.Nil(t, user)
	require.Error(t, err)

	var appErr *models.AppError
	assert.False(t, errors.As(err, &appErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}
