// Package login provides HTTP handlers for user authentication.
package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/auth"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	provider  *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)
	s.validator = validator.New()

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
	})
}

// credentials is the login form payload.
type credentials struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(credentials)

	if err := c.BodyParser(form); err != nil {
		return s.renderError(c, "Invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		return s.renderError(c, "Username and password are required")
	}

	user, err := s.provider.Authenticate(form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserAccountDisabled):
			return s.renderError(c, "Account is disabled")
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
			return s.renderError(c, "Invalid username or password")
		default:
			log.Error().Err(err).Str("username", form.Username).Msg("login failed")
			return s.renderError(c, "Internal server error")
		}
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.renderError(c, "Internal server error")
	}

	userSession := &session.Data{
		User: *user,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.renderError(c, "Internal server error")
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.Redirect("/dashboard")
}

func (s *Service) renderError(c *fiber.Ctx, message string) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
		"error": message,
	})
}
