package daemon

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	return db
}

func TestNewSweeper_InvalidSpec(t *testing.T) {
	_, err := NewSweeper(newTestDB(t), "every now and then")
	require.Error(t, err)
}

func TestSweeperRun(t *testing.T) {
	db := newTestDB(t)

	orgID := uint(1)
	require.NoError(t, db.Create(&models.Organization{ID: orgID, ShortName: "DEMO", LongName: "Demo"}).Error)
	require.NoError(t, db.Create(&models.Category{ID: 1, OrgID: &orgID, Type: models.CategoryTypeRole, Name: "Events"}).Error)

	past := datatypes.Date(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
	today := datatypes.Date(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))

	roles := []models.Role{
		{ID: 1, CategoryID: 1, Name: "Winter camp", EndDate: &past, Valid: true},
		{ID: 2, CategoryID: 1, Name: "Running today", EndDate: &today, Valid: true},
		{ID: 3, CategoryID: 1, Name: "Board", Valid: true},
		{ID: 4, CategoryID: 1, Name: "Webmaster", EndDate: &past, Webmaster: true, Valid: true},
	}
	for i := range roles {
		require.NoError(t, db.Create(&roles[i]).Error)
	}

	s, err := NewSweeper(db, "@daily")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC) }
	s.Run()

	valid := map[uint]bool{}
	for _, id := range []uint{1, 2, 3, 4} {
		var r models.Role
		require.NoError(t, db.First(&r, id).Error)
		valid[id] = r.Valid
	}

	assert.Equal(t, map[uint]bool{1: false, 2: true, 3: true, 4: true}, valid)
}
