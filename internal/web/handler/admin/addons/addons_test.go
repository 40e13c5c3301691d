package addons

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/addon"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
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

func newTestService(t *testing.T) (*Service, *addon.Registry) {
	t.Helper()

	db := setupTestDB(t)

	registry, err := addon.NewRegistry(db, "1.0.0")
	require.NoError(t, err)

	require.NoError(t, registry.Register(addon.Descriptor{
		Slug:        "samplepack",
		Name:        "Sample Pack",
		Version:     "0.1.0",
		Description: "A sample addon",
	}))

	return &Service{
		cfg:       &config.Config{},
		db:        db,
		registry:  registry,
		validator: validator.New(),
	}, registry
}

func newTestApp(service *Service) *fiber.App {
	app := fiber.New(fiber.Config{
		Views: &mockTemplateEngine{},
	})

	app.Get("/admin/addons", service.Get)
	app.Post("/admin/addons", service.Post)

	return app
}

func postAction(t *testing.T, app *fiber.App, slug, action string) *http.Response {
	t.Helper()

	formData := "slug=" + slug + "&action=" + action
	req := httptest.NewRequest(http.MethodPost, "/admin/addons", strings.NewReader(formData))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestGetListsCards(t *testing.T) {
	service, _ := newTestService(t)
	app := newTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/admin/addons", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPostActivate(t *testing.T) {
	service, registry := newTestService(t)
	app := newTestApp(service)

	resp := postAction(t, app, "samplepack", ActionActivate)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.True(t, registry.IsActive("samplepack"))
}

func TestPostDeactivate(t *testing.T) {
	service, registry := newTestService(t)
	app := newTestApp(service)

	require.NoError(t, registry.Activate("samplepack"))

	resp := postAction(t, app, "samplepack", ActionDeactivate)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.False(t, registry.IsActive("samplepack"))
}

func TestPostUnknownSlug(t *testing.T) {
	service, _ := newTestService(t)
	app := newTestApp(service)

	resp := postAction(t, app, "no-such-addon", ActionActivate)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPostUnknownAction(t *testing.T) {
	service, _ := newTestService(t)
	app := newTestApp(service)

	resp := postAction(t, app, "samplepack", "explode")
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
	if data, ok := binding.(fiber.Map); ok {
		if _, hasCards := data["Cards"]; hasCards {
			return nil
		}
	}
	return fiber.ErrInternalServerError
}
