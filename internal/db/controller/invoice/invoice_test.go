package invoice

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Invoice{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		orderID       uint64
		number        string
		status        string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			orderID:       1,
			number:        "INV-000001",
			expectedError: ErrDBNil,
		},
		{
			name:          "zero order id",
			dbParam:       db,
			orderID:       0,
			number:        "INV-000001",
			expectedError: ErrOrderIDZero,
		},
		{
			name:          "empty number",
			dbParam:       db,
			orderID:       1,
			number:        "",
			expectedError: ErrInvoiceNumberEmpty,
		},
		{
			name:    "successful create",
			dbParam: db,
			orderID: 42,
			number:  "INV-000001",
			status:  models.InvoiceStatusCompleted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM invoices")
			}

			inv, err := Create(tc.dbParam, tc.orderID, tc.number, now, tc.status)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, inv)
			} else {
				require.NoError(t, err)
				require.NotNil(t, inv)
				assert.Equal(t, tc.orderID, inv.OrderID)
				assert.Equal(t, tc.number, inv.InvoiceNumber)
				assert.Equal(t, tc.status, inv.Status)
				assert.NotEmpty(t, inv.Token)
				assert.NotZero(t, inv.ID)
			}
		})
	}
}

func TestCreateDuplicateNumber(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	_, err := Create(db, 1, "INV-000001", now, models.InvoiceStatusCompleted)
	require.NoError(t, err)

	// the unique index rejects a second record with the same number
	_, err = Create(db, 2, "INV-000001", now, models.InvoiceStatusCompleted)
	require.Error(t, err)
}

func TestGetByOrderID(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	created, err := Create(db, 42, "INV-000001", now, models.InvoiceStatusCompleted)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		inv, err := GetByOrderID(db, 42)
		require.NoError(t, err)
		assert.Equal(t, created.ID, inv.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := GetByOrderID(db, 99)
		require.ErrorIs(t, err, ErrInvoiceNotFound)
	})

	t.Run("nil database", func(t *testing.T) {
		_, err := GetByOrderID(nil, 42)
		require.ErrorIs(t, err, ErrDBNil)
	})
}

func TestGetByNumber(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	_, err := Create(db, 42, "INV-000007", now, models.InvoiceStatusCompleted)
	require.NoError(t, err)

	inv, err := GetByNumber(db, "INV-000007")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), inv.OrderID)

	_, err = GetByNumber(db, "INV-999999")
	require.ErrorIs(t, err, ErrInvoiceNotFound)

	_, err = GetByNumber(db, "")
	require.ErrorIs(t, err, ErrInvoiceNumberEmpty)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	created, err := Create(db, 42, "INV-000001", now, models.InvoiceStatusPending)
	require.NoError(t, err)

	err = Update(db, created.ID, models.InvoiceStatusCompleted, "/var/invoices/INV-000001.pdf")
	require.NoError(t, err)

	inv, err := GetByID(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCompleted, inv.Status)
	assert.Equal(t, "/var/invoices/INV-000001.pdf", inv.PDFPath)

	err = Update(db, 9999, models.InvoiceStatusCompleted, "")
	require.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestCount(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	count, err := Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = Create(db, 1, "INV-000001", now, models.InvoiceStatusCompleted)
	require.NoError(t, err)
	_, err = Create(db, 2, "INV-000002", now, models.InvoiceStatusCompleted)
	require.NoError(t, err)

	count, err = Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
