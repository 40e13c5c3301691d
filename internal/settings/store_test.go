package settings

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	return db
}

func TestLoadEmptyStore(t *testing.T) {
	db := setupTestDB(t)

	values, err := Load(db)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSaveThenLoad(t *testing.T) {
	db := setupTestDB(t)

	saved := Values{
		"invoice_prefix":   "FA-",
		"logo_id":          42,
		"show_field_phone": true,
	}
	require.NoError(t, Save(db, saved))

	loaded, err := Load(db)
	require.NoError(t, err)

	assert.Equal(t, "FA-", loaded.String("invoice_prefix", ""))
	assert.Equal(t, 42, loaded.Int("logo_id", 0), "numbers survive the JSON round trip")
	assert.True(t, loaded.Bool("show_field_phone", false))
}

func TestSaveOverwritesWhole(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Save(db, Values{"invoice_prefix": "INV-", "title": "Old"}))
	require.NoError(t, Save(db, Values{"invoice_prefix": "FA-"}))

	loaded, err := Load(db)
	require.NoError(t, err)

	assert.Equal(t, "FA-", loaded.String("invoice_prefix", ""))
	assert.NotContains(t, loaded, "title", "the blob is replaced, not merged, at the storage layer")
}
