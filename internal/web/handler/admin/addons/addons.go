// Package addons provides the admin handler for managing installed addons.
package addons

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/addon"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/auth"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/dashboard"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/navigation"
)

const (
	// Path is the path to the addons page.
	Path = handler.RootPath + "admin/addons"

	// TemplateName is the name of the addons template.
	TemplateName = "admin/addons"

	// ActionActivate is the form action that activates an addon.
	ActionActivate = "activate"

	// ActionDeactivate is the form action that deactivates an addon.
	ActionDeactivate = "deactivate"
)

// Card is an addon prepared for template rendering.
type Card struct {
	Descriptor addon.Descriptor
	Active     bool
}

// Service is the addons handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	registry  *addon.Registry
	validator *validator.Validate
}

// Handler is the addons handler.
var Handler = Service{}

// Init initializes the addons handler.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	registry *addon.Registry,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.registry = registry
	s.validator = validator.New()

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermAdminAddons),
		s.Get,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermAdminAddons),
		s.Post,
	)
}

// Get handles the addons page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	data := fiber.Map{
		"Navigation": s.nav(),
		"Cards":      s.cards(),
	}

	if c.Query("saved") == "1" {
		data["Success"] = "Addon state updated"
	}

	return c.Render(TemplateName, data, handler.BaseLayout)
}

// action is the addon toggle form payload.
type action struct {
	Slug   string `form:"slug"   validate:"required"`
	Action string `form:"action" validate:"required,oneof=activate deactivate"`
}

// Post handles addon activation and deactivation.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(action)

	if err := c.BodyParser(form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Unknown action")
	}

	var err error

	switch form.Action {
	case ActionActivate:
		err = s.registry.Activate(form.Slug)
	default:
		err = s.registry.Deactivate(form.Slug)
	}

	if err != nil {
		if errors.Is(err, addon.ErrAddonNotFound) {
			return s.renderError(c, fiber.StatusNotFound, "Addon not found")
		}

		log.Error().Err(err).Str("slug", form.Slug).Str("action", form.Action).
			Msg("failed to change addon state")

		return s.renderError(c, fiber.StatusInternalServerError, "Failed to change addon state")
	}

	log.Info().Str("slug", form.Slug).Str("action", form.Action).Msg("addon state changed")

	return c.Redirect(Path + "?saved=1")
}

func (s *Service) nav() *navigation.Context {
	return navigation.NewContext("Addons", "admin", "addons").
		AddBreadcrumb("Home", dashboard.Path, false).
		AddCurrent(Path)
}

func (s *Service) cards() []Card {
	descriptors := s.registry.List()

	cards := make([]Card, 0, len(descriptors))
	for _, d := range descriptors {
		cards = append(cards, Card{
			Descriptor: d,
			Active:     s.registry.IsActive(d.Slug),
		})
	}

	return cards
}

func (s *Service) renderError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).Render(TemplateName, fiber.Map{
		"Navigation": s.nav(),
		"Cards":      s.cards(),
		"Error":      message,
	}, handler.BaseLayout)
}
