package invoice

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/settings"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	catalog := settings.DefaultCatalog()

	return &Service{
		cfg:       &config.Config{},
		db:        db,
		catalog:   catalog,
		sanitizer: settings.NewSanitizer(catalog),
		renderer:  settings.NewRenderer(settings.OptionName, nil),
	}, db
}

func newTestApp(service *Service) *fiber.App {
	app := fiber.New(fiber.Config{
		Views: &mockTemplateEngine{},
	})

	app.Get("/admin/settings", service.Get)
	app.Post("/admin/settings", service.Post)
	app.Post("/admin/api/settings", service.PostAPI)

	return app
}

func TestGetRendersAllTabs(t *testing.T) {
	service, _ := newTestService(t)
	app := newTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetUnknownTabFallsBackToFirst(t *testing.T) {
	service, _ := newTestService(t)
	app := newTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/admin/settings?tab=bogus", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPostSavesSanitizedValues(t *testing.T) {
	service, db := newTestService(t)
	app := newTestApp(service)

	formData := "invoice_prefix=FA-&theme=flat&primary_color=%23ff0000&show_field_email=1"
	req := httptest.NewRequest(http.MethodPost, "/admin/settings?tab=general", strings.NewReader(formData))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "saved=1")

	stored, err := settings.Load(db)
	require.NoError(t, err)
	assert.Equal(t, "FA-", stored.String("invoice_prefix", ""))
	assert.Equal(t, "flat", stored.String("theme", ""))
	assert.Equal(t, "#ff0000", stored.String("primary_color", ""))
	assert.True(t, stored.Bool("show_field_email", false))
}

func TestPostRejectsInvalidSelectValue(t *testing.T) {
	service, db := newTestService(t)
	app := newTestApp(service)

	formData := "theme=not-a-theme"
	req := httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader(formData))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	stored, err := settings.Load(db)
	require.NoError(t, err)

	// invalid option falls back to the catalog default
	assert.Equal(t, "modern", stored.String("theme", ""))
}

func TestPostMergesOverStoredValues(t *testing.T) {
	service, db := newTestService(t)
	app := newTestApp(service)

	require.NoError(t, settings.Save(db, settings.Values{
		"title":   "Rechnung",
		"address": "Old Street 1",
	}))

	formData := "title=Facture"
	req := httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader(formData))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	stored, err := settings.Load(db)
	require.NoError(t, err)
	assert.Equal(t, "Facture", stored.String("title", ""))
	assert.Equal(t, "Old Street 1", stored.String("address", ""), "untouched keys survive the merge")
}

func TestPostAPISavesJSONBody(t *testing.T) {
	service, db := newTestService(t)
	app := newTestApp(service)

	body := `{"invoice_prefix": "RE-", "show_field_phone": true}`
	req := httptest.NewRequest(http.MethodPost, "/admin/api/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"success":true`)

	stored, err := settings.Load(db)
	require.NoError(t, err)
	assert.Equal(t, "RE-", stored.String("invoice_prefix", ""))
	assert.True(t, stored.Bool("show_field_phone", false))
}

func TestPostAPIRejectsInvalidJSON(t *testing.T) {
	service, _ := newTestService(t)
	app := newTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/settings", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

type mockTemplateEngine struct{}

func (m *mockTemplateEngine) Load() error {
	return nil
}

func (m *mockTemplateEngine) Render(_ io.Writer, _ string, binding interface{}, _ ...string) error {
	// The settings page always renders with its tab views
	if data, ok := binding.(fiber.Map); ok {
		if _, hasTabs := data["Tabs"]; hasTabs {
			return nil
		}
	}
	return fiber.ErrInternalServerError
}
