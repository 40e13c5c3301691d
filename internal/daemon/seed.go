package daemon

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/auth"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
)

// Role names created at first start.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// customerPermissions are the permissions granted to the customer role.
var customerPermissions = []string{ //nolint:gochecknoglobals
	auth.PermInvoiceView,
}

// seed creates roles, permissions and the initial admin account on an empty
// database. In dev mode it also creates a pair of demo orders.
func seed(cfg *config.Config, db *gorm.DB) {
	seedPermissions(db)

	adminRole := seedRole(db, RoleAdmin, "Full administrative access", auth.AllPermissions)
	seedRole(db, RoleCustomer, "Customers viewing their own invoices", customerPermissions)

	var count int64
	db.Model(&models.User{}).Count(&count)

	if count == 0 {
		db.Create(
			&models.User{
				Username: "admin",
				Email:    "admin@localhost",
				Password: models.HashPassword("changeme"),
				Active:   true,
				RoleID:   adminRole.ID,
			},
		)

		log.Info().Msg("created default admin user, change its password after first login")
	}

	if cfg.DevMode {
		seedDemoOrders(db)
	}
}

// seedPermissions makes sure every known permission exists.
func seedPermissions(db *gorm.DB) {
	for _, name := range auth.AllPermissions {
		resource, action, _ := strings.Cut(name, ".")

		var existing models.Permission
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}

		db.Create(&models.Permission{
			Name:     name,
			Resource: resource,
			Action:   action,
		})
	}
}

// seedRole creates the role if missing and links it to the given permissions.
func seedRole(db *gorm.DB, name, description string, permissions []string) *models.Role {
	role := &models.Role{}

	if err := db.Where("name = ?", name).First(role).Error; err != nil {
		role = &models.Role{
			Name:        name,
			Description: description,
			IsSystem:    true,
		}
		db.Create(role)
	}

	for _, permName := range permissions {
		var perm models.Permission
		if err := db.Where("name = ?", permName).First(&perm).Error; err != nil {
			continue
		}

		var existing models.RolePermission
		err := db.Where("role_id = ? AND permission_id = ?", role.ID, perm.ID).First(&existing).Error
		if err == nil {
			continue
		}

		db.Create(&models.RolePermission{
			RoleID:       role.ID,
			PermissionID: perm.ID,
		})
	}

	return role
}

// seedDemoOrders creates a couple of orders to click through in dev mode.
func seedDemoOrders(db *gorm.DB) {
	var count int64
	db.Model(&models.Order{}).Count(&count)

	if count > 0 {
		return
	}

	orders := []models.Order{
		{
			Number:           "1001",
			Status:           "completed",
			Currency:         "EUR",
			BillingFirstName: "Jane",
			BillingLastName:  "Doe",
			BillingAddress:   "1 Main Street",
			BillingCity:      "Springfield",
			BillingCountry:   "DE",
			BillingEmail:     "jane@example.com",
			PaymentMethod:    "Credit Card",
			Subtotal:         decimal.NewFromFloat(49.90),
			Tax:              decimal.NewFromFloat(9.48),
			Total:            decimal.NewFromFloat(59.38),
			CreatedAt:        time.Now().Add(-48 * time.Hour),
			Items: []models.OrderItem{
				{Name: "Widget", Quantity: 2, UnitPrice: decimal.NewFromFloat(24.95), Total: decimal.NewFromFloat(49.90)},
			},
		},
		{
			Number:           "1002",
			Status:           "processing",
			Currency:         "EUR",
			BillingFirstName: "John",
			BillingLastName:  "Smith",
			BillingAddress:   "2 Oak Avenue",
			BillingCity:      "Shelbyville",
			BillingCountry:   "DE",
			BillingEmail:     "john@example.com",
			PaymentMethod:    "PayPal",
			Subtotal:         decimal.NewFromFloat(15.00),
			Tax:              decimal.Zero,
			Total:            decimal.NewFromFloat(15.00),
			CreatedAt:        time.Now().Add(-24 * time.Hour),
			Items: []models.OrderItem{
				{Name: "Gadget", Quantity: 1, UnitPrice: decimal.NewFromFloat(15.00), Total: decimal.NewFromFloat(15.00)},
			},
		},
	}

	for i := range orders {
		db.Create(&orders[i])
	}

	log.Info().Int("orders", len(orders)).Msg("seeded demo orders")
}
