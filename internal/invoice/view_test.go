package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/settings"
)

func testStore() config.Store {
	return config.Store{Name: "Acme Shop", CurrencySymbol: "€"}
}

func renderInvoiceFor(t *testing.T, db *gorm.DB, orderID uint64) string {
	t.Helper()

	inv, err := NewGenerator(db).Ensure(orderID)
	require.NoError(t, err)

	r, err := NewRenderer(db, testStore())
	require.NoError(t, err)

	html, err := r.Render(inv.ID)
	require.NoError(t, err)
	return html
}

func TestRenderInvoiceDocument(t *testing.T) {
	db := setupTestDB(t)
	o := seedOrder(t, db, "42", 1)

	html := renderInvoiceFor(t, db, o.ID)

	assert.Contains(t, html, "INV-000001")
	assert.Contains(t, html, "#42")
	assert.Contains(t, html, "Widget")
	assert.Contains(t, html, "€20.00")
	assert.Contains(t, html, "€40.00")
	assert.Contains(t, html, "€48.00")
	assert.Contains(t, html, "Tax:")
	assert.Contains(t, html, "€8.00")
	assert.Contains(t, html, "Acme Shop")
}

func TestRenderHidesZeroTax(t *testing.T) {
	db := setupTestDB(t)
	o := seedOrder(t, db, "42", 1)
	require.NoError(t, db.Model(o).Update("tax", decimal.Zero).Error)

	html := renderInvoiceFor(t, db, o.ID)

	assert.NotContains(t, html, "Tax:")
}

func TestRenderRespectsFieldVisibility(t *testing.T) {
	db := setupTestDB(t)
	o := seedOrder(t, db, "42", 1)

	require.NoError(t, settings.Save(db, settings.Values{
		"show_field_phone":          false,
		"show_field_transaction_id": true,
	}))

	html := renderInvoiceFor(t, db, o.ID)

	assert.NotContains(t, html, "555-0100")
	assert.Contains(t, html, "txn_123", "transaction id enabled explicitly")
	assert.Contains(t, html, "Jane", "first name visible by default")
	assert.Contains(t, html, "jane@example.com")
}

func TestRenderAppliesThemeSettings(t *testing.T) {
	db := setupTestDB(t)
	o := seedOrder(t, db, "42", 1)

	require.NoError(t, settings.Save(db, settings.Values{
		"title":         "Facture",
		"theme":         "classic",
		"primary_color": "#112233",
		"date_format":   "2006-01-02",
	}))

	html := renderInvoiceFor(t, db, o.ID)

	assert.Contains(t, html, "Facture")
	assert.Contains(t, html, "theme-classic")
	assert.Contains(t, html, "#112233")
}

func TestRenderEscapesOrderData(t *testing.T) {
	db := setupTestDB(t)
	o := seedOrder(t, db, "42", 1)
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("order_id = ?", o.ID).
		Update("name", `<script>alert("x")</script>`).Error)

	html := renderInvoiceFor(t, db, o.ID)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderNotFound(t *testing.T) {
	db := setupTestDB(t)

	r, err := NewRenderer(db, testStore())
	require.NoError(t, err)

	t.Run("missing invoice", func(t *testing.T) {
		_, err := r.Render(9999)
		assert.ErrorIs(t, err, ErrInvoiceNotFound)
	})

	t.Run("missing order behind invoice", func(t *testing.T) {
		o := seedOrder(t, db, "42", 1)
		inv, err := NewGenerator(db).Ensure(o.ID)
		require.NoError(t, err)
		require.NoError(t, db.Delete(&models.OrderItem{}, "order_id = ?", o.ID).Error)
		require.NoError(t, db.Delete(&models.Order{}, o.ID).Error)

		_, err = r.Render(inv.ID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
