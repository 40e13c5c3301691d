// Package invoice generates invoice records for store orders and renders
// them as standalone HTML documents.
package invoice

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	invoicectl "github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/invoice"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/order"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/settings"
)

// GeneratedListener is notified after a new invoice record has been created.
type GeneratedListener interface {
	InvoiceGenerated(invoiceID, orderID uint64)
}

// Generator assigns invoice numbers and creates invoice records. Number
// assignment derives the next sequence from the current record count, so the
// read and the insert are serialized behind a mutex; the unique index on
// invoice_number remains as a backstop against a second process, where a
// conflict surfaces as an error rather than being retried.
type Generator struct {
	db *gorm.DB

	mu        sync.Mutex
	listeners []GeneratedListener
}

// NewGenerator returns a generator over the given database.
func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{db: db}
}

// AddListener registers a listener notified on every newly created invoice.
func (g *Generator) AddListener(l GeneratedListener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, l)
}

// Ensure returns the invoice for an order, creating one on first call.
// Repeated calls for the same order return the same record and never create
// duplicates. The order itself must exist.
func (g *Generator) Ensure(orderID uint64) (*models.Invoice, error) {
	if _, err := order.GetByID(g.db, orderID); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	existing, err := invoicectl.GetByOrderID(g.db, orderID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, invoicectl.ErrInvoiceNotFound) {
		return nil, err
	}

	number, err := g.nextNumber()
	if err != nil {
		return nil, err
	}

	created, err := invoicectl.Create(g.db, orderID, number, time.Now(), models.InvoiceStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("create invoice %s: %w", number, err)
	}

	generatedCounter.Inc()

	log.Info().
		Uint64("order_id", orderID).
		Str("invoice_number", created.InvoiceNumber).
		Msg("Invoice generated")

	for _, l := range g.listeners {
		l.InvoiceGenerated(created.ID, orderID)
	}

	return created, nil
}

// nextNumber builds the next invoice number: the configured prefix plus the
// zero-padded record count plus one.
func (g *Generator) nextNumber() (string, error) {
	values, err := settings.Load(g.db)
	if err != nil {
		return "", err
	}
	prefix := values.String("invoice_prefix", "INV-")

	count, err := invoicectl.Count(g.db)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%06d", prefix, count+1), nil
}
