// Package invoice provides the admin handler for the invoice settings page.
//
// The page is driven entirely by the field catalog: every tab renders its
// fields through the settings renderer, and submissions run through the
// sanitizer before the merged result is persisted as one settings blob.
package invoice

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/auth"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/settings"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/dashboard"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/navigation"
)

const (
	// Path is the path to the invoice settings page.
	Path = handler.RootPath + "admin/settings"

	// APIPath is the path of the JSON settings endpoint.
	APIPath = handler.RootPath + "admin/api/settings"

	// TemplateName is the name of the invoice settings template.
	TemplateName = "admin/settings"
)

// TabView is a catalog tab prepared for template rendering.
type TabView struct {
	ID     string
	Title  string
	Icon   string
	Fields []template.HTML
}

// Service is the invoice settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	catalog   *settings.Catalog
	sanitizer *settings.Sanitizer
	renderer  *settings.Renderer
}

// Handler is the invoice settings handler.
var Handler = Service{}

// Init initializes the invoice settings handler.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	renderer *settings.Renderer,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.catalog = settings.DefaultCatalog()
	s.sanitizer = settings.NewSanitizer(s.catalog)
	s.renderer = renderer

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermAdminSettings),
		s.Get,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermAdminSettings),
		s.Post,
	)
	app.Post(APIPath,
		auth.RequirePermission(authService, auth.PermAdminSettings),
		s.PostAPI,
	)
}

// Get handles the invoice settings page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Invoice Settings", "settings", "invoice").
		AddBreadcrumb("Home", dashboard.Path, false).
		AddBreadcrumb("Settings", "", false).
		AddCurrent(Path)

	values, err := settings.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load invoice settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	data := fiber.Map{
		"Navigation": nav,
		"Tabs":       s.tabViews(values),
		"ActiveTab":  s.activeTab(c.Query("tab")),
	}

	if c.Query("saved") == "1" {
		data["Success"] = "Settings saved"
	}

	return c.Render(TemplateName, data, handler.BaseLayout)
}

// Post handles the full-page settings form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	raw := formValues(c)

	if err := s.save(raw); err != nil {
		log.Error().Err(err).Msg("failed to save invoice settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save settings")
	}

	return c.Redirect(Path + "?tab=" + s.activeTab(c.Query("tab")) + "&saved=1")
}

// PostAPI handles the asynchronous JSON settings submission. It runs the
// same sanitize/merge/save pipeline as the form endpoint and answers with a
// JSON envelope.
func (s *Service) PostAPI(c *fiber.Ctx) error {
	raw := settings.Values{}

	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid JSON body",
		})
	}

	if err := s.save(raw); err != nil {
		log.Error().Err(err).Msg("failed to save invoice settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "failed to save settings",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Settings saved",
	})
}

// save sanitizes the submitted values, merges them over the stored blob and
// writes the result back in a single upsert.
func (s *Service) save(raw settings.Values) error {
	sanitized := s.sanitizer.Sanitize(raw)

	stored, err := settings.Load(s.db)
	if err != nil {
		return err
	}

	merged := settings.Merge(stored, sanitized)

	if err := settings.Save(s.db, merged); err != nil {
		return err
	}

	log.Info().Int("fields", len(sanitized)).Msg("invoice settings saved")

	return nil
}

// tabViews renders every catalog tab against the stored values.
func (s *Service) tabViews(values settings.Values) []TabView {
	views := make([]TabView, 0, len(s.catalog.Tabs))

	for _, tab := range s.catalog.Tabs {
		view := TabView{
			ID:     tab.ID,
			Title:  tab.Title,
			Icon:   tab.Icon,
			Fields: make([]template.HTML, 0, len(tab.Fields)),
		}

		for _, f := range tab.Fields {
			view.Fields = append(view.Fields, s.renderer.Render(f, values))
		}

		views = append(views, view)
	}

	return views
}

// activeTab validates the requested tab id, falling back to the first tab.
func (s *Service) activeTab(requested string) string {
	if _, ok := s.catalog.Tab(requested); ok {
		return requested
	}

	return s.catalog.Tabs[0].ID
}

// formValues collects the posted form fields into a raw value map. Multiple
// values under one key keep the last occurrence, matching hidden-input plus
// checkbox submissions.
func formValues(c *fiber.Ctx) settings.Values {
	raw := settings.Values{}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		raw[string(key)] = string(value)
	})

	return raw
}
