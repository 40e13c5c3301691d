// Package dashboard provides the dashboard handler with store-wide counters.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/addon"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/auth"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	invoicectl "github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/invoice"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/order"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/handler"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	// RecentOrderCount is the number of recent orders shown on the dashboard.
	RecentOrderCount = 10
)

// RecentOrder is a single row in the recent orders table.
type RecentOrder struct {
	Order         models.Order
	HasInvoice    bool
	InvoiceNumber string
}

// Data holds all values rendered on the dashboard.
type Data struct {
	OrderCount   int64
	InvoiceCount int64
	ActiveAddons int
	RecentOrders []RecentOrder
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	registry *addon.Registry
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, registry *addon.Registry) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.registry = registry

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermDashboardView),
		s.Get,
	)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Home", Path, false).
		AddCurrent(Path)

	data, err := s.collect()
	if err != nil {
		log.Error().Err(err).Msg("failed to collect dashboard data")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load dashboard")
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Data":       data,
	}, handler.BaseLayout)
}

// collect gathers the counters and the recent order list.
func (s *Service) collect() (*Data, error) {
	data := &Data{}

	var err error

	if data.OrderCount, err = order.Count(s.db); err != nil {
		return nil, err
	}

	if data.InvoiceCount, err = invoicectl.Count(s.db); err != nil {
		return nil, err
	}

	if s.registry != nil {
		data.ActiveAddons = len(s.registry.Active())
	}

	orders, err := order.List(s.db, RecentOrderCount, 0)
	if err != nil {
		return nil, err
	}

	data.RecentOrders = make([]RecentOrder, 0, len(orders))

	for i := range orders {
		row := RecentOrder{Order: orders[i]}

		inv, err := invoicectl.GetByOrderID(s.db, orders[i].ID)

		switch {
		case err == nil:
			row.HasInvoice = true
			row.InvoiceNumber = inv.InvoiceNumber
		case errors.Is(err, invoicectl.ErrInvoiceNotFound):
			// order has no invoice yet
		default:
			return nil, err
		}

		data.RecentOrders = append(data.RecentOrders, row)
	}

	return data, nil
}
