package organization

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Organization{}))

	return db
}

func TestGetByShortName(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Organization{ShortName: "DEMO", LongName: "Demo club"}).Error)

	org, err := GetByShortName(db, " demo ")
	require.NoError(t, err)
	assert.Equal(t, "Demo club", org.LongName)

	_, err = GetByShortName(db, "NONE")
	require.ErrorIs(t, err, ErrOrganizationNotFound)

	_, err = GetByShortName(nil, "DEMO")
	require.ErrorIs(t, err, ErrDBNil)
}

func TestEnsure(t *testing.T) {
	db := setupTestDB(t)

	created, err := Ensure(db, "demo", "")
	require.NoError(t, err)
	assert.Equal(t, "DEMO", created.ShortName)
	assert.Equal(t, "DEMO", created.LongName)

	again, err := Ensure(db, "DEMO", "ignored")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Organization{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
