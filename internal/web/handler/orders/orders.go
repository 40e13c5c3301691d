// Package orders provides the admin handler listing store orders and
// triggering invoice generation for them.
package orders

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
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/invoice"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler/dashboard"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/navigation"
)

const (
	// Path is the path to the orders page.
	Path = handler.RootPath + "admin/orders"

	// TemplateName is the name of the orders template.
	TemplateName = "admin/orders"

	// DefaultPageSize is the default number of orders per page.
	DefaultPageSize = 25
)

// Row is a single order prepared for template rendering.
type Row struct {
	Order         models.Order
	HasInvoice    bool
	InvoiceID     uint64
	InvoiceNumber string
}

// Data holds the order list and its pagination state.
type Data struct {
	Rows        []Row
	CurrentPage int
	PageSize    int
	TotalItems  int64
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    int
	NextPage    int
}

// Service is the orders handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	generator *invoice.Generator
}

// Handler is the orders handler.
var Handler = Service{}

// Init initializes the orders handler.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	generator *invoice.Generator,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.generator = generator

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermOrdersManage),
		s.Get,
	)
	app.Post(Path+"/:id/invoice",
		auth.RequirePermission(authService, auth.PermInvoiceGenerate),
		s.Generate,
	)
}

// Get handles the orders page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Orders", "orders", "orders").
		AddBreadcrumb("Home", dashboard.Path, false).
		AddCurrent(Path)

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}

	data, err := s.collect(page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to load orders")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load orders")
	}

	viewData := fiber.Map{
		"Navigation": nav,
		"Data":       data,
	}

	if c.Query("generated") == "1" {
		viewData["Success"] = "Invoice generated"
	}

	return c.Render(TemplateName, viewData, handler.BaseLayout)
}

// Generate creates the invoice for an order. Repeated requests for the same
// order return the existing invoice instead of creating another one.
func (s *Service) Generate(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid order id")
	}

	inv, err := s.generator.Ensure(orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Order not found")
		}

		log.Error().Err(err).Uint64("order_id", orderID).Msg("failed to generate invoice")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to generate invoice")
	}

	log.Info().
		Uint64("order_id", orderID).
		Str("invoice_number", inv.InvoiceNumber).
		Msg("invoice ensured for order")

	return c.Redirect(Path + "?generated=1")
}

// collect loads one page of orders with their invoice state.
func (s *Service) collect(page, pageSize int) (*Data, error) {
	total, err := order.Count(s.db)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	if page > totalPages {
		page = totalPages
	}

	orders, err := order.List(s.db, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(orders))

	for i := range orders {
		row := Row{Order: orders[i]}

		inv, err := invoicectl.GetByOrderID(s.db, orders[i].ID)

		switch {
		case err == nil:
			row.HasInvoice = true
			row.InvoiceID = inv.ID
			row.InvoiceNumber = inv.InvoiceNumber
		case errors.Is(err, invoicectl.ErrInvoiceNotFound):
			// no invoice yet
		default:
			return nil, err
		}

		rows = append(rows, row)
	}

	return &Data{
		Rows:        rows,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}, nil
}
