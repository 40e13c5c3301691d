// Package invoiceview serves rendered invoice documents to staff and to the
// customer the invoice belongs to.
package invoiceview

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/auth"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	invoicectl "github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/invoice"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/order"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/invoice"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler"
)

const (
	// Path is the base path of the invoice document routes.
	Path = handler.RootPath + "invoice"
)

// Service is the invoice view handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	renderer    *invoice.Renderer
}

// Handler is the invoice view handler.
var Handler = Service{}

// Init initializes the invoice view handler.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	renderer *invoice.Renderer,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService
	s.renderer = renderer

	app.Get(Path+"/:id", s.Get)
	app.Get(Path+"/:id/download", s.Download)
}

// Get renders the invoice document. Staff with order management permission
// can open any invoice; customers only the invoices of their own orders.
func (s *Service) Get(c *fiber.Ctx) error {
	invoiceID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Invoice not found")
	}

	record, err := invoicectl.GetByID(s.db, invoiceID)
	if err != nil {
		if errors.Is(err, invoicectl.ErrInvoiceNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Invoice not found")
		}

		log.Error().Err(err).Uint64("invoice_id", invoiceID).Msg("failed to load invoice")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load invoice")
	}

	allowed, err := s.mayView(c, record.OrderID)
	if err != nil {
		log.Error().Err(err).Uint64("invoice_id", invoiceID).Msg("failed to check invoice access")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load invoice")
	}

	if !allowed {
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	document, err := s.renderer.Render(invoiceID)
	if err != nil {
		if errors.Is(err, invoice.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Invoice not found")
		}

		log.Error().Err(err).Uint64("invoice_id", invoiceID).Msg("failed to render invoice")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to render invoice")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return c.SendString(document)
}

// Download is a placeholder until PDF rendering exists.
func (s *Service) Download(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotImplemented).SendString("PDF download is not implemented yet")
}

// mayView reports whether the logged-in user may open the invoice of the
// given order.
func (s *Service) mayView(c *fiber.Ctx, orderID uint64) (bool, error) {
	user := auth.CurrentUser(c)
	if user == nil {
		return false, nil
	}

	manages, err := s.authService.HasPermission(user.ID, auth.PermOrdersManage)
	if err != nil {
		return false, err
	}

	if manages {
		return true, nil
	}

	o, err := order.GetByID(s.db, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return false, nil
		}

		return false, err
	}

	if o.CustomerID != user.ID {
		return false, nil
	}

	return s.authService.HasPermission(user.ID, auth.PermInvoiceView)
}
