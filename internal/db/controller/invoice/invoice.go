// Package invoice provides CRUD operations for invoice records.
package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
)

var (
	// ErrInvoiceNotFound is returned when an invoice is not found.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrInvoiceNumberEmpty is returned when attempting to create an invoice without a number.
	ErrInvoiceNumberEmpty = errors.New("invoice number cannot be empty")
	// ErrOrderIDZero is returned when attempting to create an invoice without an order.
	ErrOrderIDZero = errors.New("order id cannot be zero")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves an invoice by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Invoice, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var inv models.Invoice
	result := db.First(&inv, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, result.Error
	}

	return &inv, nil
}

// GetByOrderID retrieves the invoice belonging to an order.
func GetByOrderID(db *gorm.DB, orderID uint64) (*models.Invoice, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var inv models.Invoice
	result := db.Where("order_id = ?", orderID).First(&inv)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, result.Error
	}

	return &inv, nil
}

// GetByNumber retrieves an invoice by its formatted invoice number.
func GetByNumber(db *gorm.DB, number string) (*models.Invoice, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if number == "" {
		return nil, ErrInvoiceNumberEmpty
	}

	var inv models.Invoice
	result := db.Where("invoice_number = ?", number).First(&inv)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, result.Error
	}

	return &inv, nil
}

// Create creates a new invoice record.
// The unique index on invoice_number is the last line of defense against
// duplicate numbers; a conflict surfaces as the driver's error.
func Create(db *gorm.DB, orderID uint64, number string, date time.Time, status string) (*models.Invoice, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if orderID == 0 {
		return nil, ErrOrderIDZero
	}
	if number == "" {
		return nil, ErrInvoiceNumberEmpty
	}

	if status == "" {
		status = models.InvoiceStatusPending
	}

	inv := &models.Invoice{
		OrderID:       orderID,
		InvoiceNumber: number,
		InvoiceDate:   date,
		Status:        status,
		Token:         uuid.NewString(),
	}

	result := db.Create(inv)
	if result.Error != nil {
		return nil, result.Error
	}

	return inv, nil
}

// Update persists changes to an invoice's status and pdf path.
// All other columns are immutable after creation.
func Update(db *gorm.DB, id uint64, status, pdfPath string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "pdf_path": pdfPath})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

// Delete removes an invoice by ID. Only used on full data removal.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Invoice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

// Count returns the total number of invoice records.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	result := db.Model(&models.Invoice{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
