package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order represents a store order as imported from the shop frontend.
// Orders are read-only from the invoice manager's point of view.
type Order struct {
	// ID is the unique identifier for the order.
	ID uint64 `gorm:"primaryKey"`
	// Number is the human-facing order number.
	Number string `gorm:"uniqueIndex;size:50;not null"`
	// CustomerID references the user who placed the order.
	CustomerID uint64 `gorm:"index"`
	// Status is the order status as reported by the shop (e.g. "completed").
	Status string `gorm:"size:30"`
	// Currency is the ISO currency code of all amounts on this order.
	Currency string `gorm:"size:3;default:'EUR'"`

	// Billing details captured at checkout.
	BillingFirstName string `gorm:"size:100"`
	BillingLastName  string `gorm:"size:100"`
	BillingCompany   string `gorm:"size:150"`
	BillingAddress   string `gorm:"size:255"`
	BillingCity      string `gorm:"size:100"`
	BillingState     string `gorm:"size:100"`
	BillingZip       string `gorm:"size:20"`
	BillingCountry   string `gorm:"size:2"`
	BillingEmail     string `gorm:"size:255"`
	BillingPhone     string `gorm:"size:50"`

	// PaymentMethod is the payment method title shown to the customer.
	PaymentMethod string `gorm:"size:100"`
	// TransactionID is the payment gateway transaction reference.
	TransactionID string `gorm:"size:100"`
	// CustomerNote is the note left by the customer at checkout.
	CustomerNote string `gorm:"size:500"`

	// Subtotal is the sum of line totals before tax.
	Subtotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Tax is the total tax amount.
	Tax decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	// Total is the grand total including tax.
	Total decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// Metadata carries free-form key/value data attached by the shop.
	Metadata datatypes.JSONMap

	// Items are the order line items.
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	// CreatedAt is the timestamp when the order was placed.
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the order was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Order model.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single line on an order.
type OrderItem struct {
	// ID is the unique identifier for the line item.
	ID uint64 `gorm:"primaryKey"`
	// OrderID is the order this line belongs to.
	OrderID uint64 `gorm:"index;not null"`
	// Name is the product name at the time of purchase.
	Name string `gorm:"size:255;not null"`
	// Quantity is the number of units purchased.
	Quantity int `gorm:"not null;default:1"`
	// UnitPrice is the price per unit before tax.
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Total is the line total (unit price times quantity).
	Total decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName specifies the database table name for the OrderItem model.
func (OrderItem) TableName() string {
	return "order_items"
}
