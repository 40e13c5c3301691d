// Package order provides read operations for store orders.
// Orders are imported from the shop frontend; the invoice manager never
// creates or mutates them.
package order

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves an order with its line items.
func GetByID(db *gorm.DB, id uint64) (*models.Order, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var o models.Order
	result := db.Preload("Items").First(&o, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, result.Error
	}

	return &o, nil
}

// List retrieves orders newest first, with line items, for the admin list page.
func List(db *gorm.DB, limit, offset int) ([]models.Order, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var orders []models.Order
	result := db.Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

// Count returns the total number of orders.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	result := db.Model(&models.Order{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
