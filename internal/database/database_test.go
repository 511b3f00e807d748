package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campusmarket/internal/models"
)

func TestMigrateCreatesSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "listings", "roommate_profiles", "messages"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}

	// roommate uniqueness is enforced at the schema level too
	assert.True(t, db.Migrator().HasIndex(&models.RoommateProfile{}, "UserID"))
}

func TestCustomGormLoggerLogMode(t *testing.T) {
	base := newGormLogger()

	silenced := base.LogMode(logger.Silent)
	assert.NotSame(t, base, silenced)

	custom, ok := silenced.(*CustomGormLogger)
	require.True(t, ok)
	assert.Equal(t, logger.Silent, custom.Config.LogLevel)
}
