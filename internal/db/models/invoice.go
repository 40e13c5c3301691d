package models

import "time"

// Invoice statuses.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusCompleted = "completed"
)

// Invoice associates a store order with a generated invoice number.
// An order has at most one invoice; the invoice number is unique across
// all records and derived from the configured prefix plus a sequence.
type Invoice struct {
	// ID is the unique identifier for the invoice.
	ID uint64 `gorm:"primaryKey"`
	// OrderID is the order this invoice belongs to.
	OrderID uint64 `gorm:"index;not null"`
	// InvoiceNumber is the formatted invoice number, e.g. "INV-000001".
	InvoiceNumber string `gorm:"uniqueIndex;size:100;not null"`
	// InvoiceDate is the date printed on the invoice.
	InvoiceDate time.Time `gorm:"not null"`
	// Status is the invoice lifecycle status (pending or completed).
	Status string `gorm:"index;size:20;default:'pending'"`
	// PDFPath is the path of a rendered PDF document, empty until one exists.
	PDFPath string `gorm:"size:255"`
	// Token is a random identifier used in shareable invoice links.
	Token string `gorm:"uniqueIndex;size:36"`
	// CreatedAt is the timestamp when the invoice was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the invoice was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Invoice model.
func (Invoice) TableName() string {
	return "invoices"
}
