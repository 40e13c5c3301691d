package invoice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/config"
	invoicectl "github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/invoice"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/order"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/models"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/settings"
)

//go:embed templates/*.gohtml
var templateFiles embed.FS

// ErrInvoiceNotFound aliases the controller sentinel so callers only import
// this package.
var ErrInvoiceNotFound = invoicectl.ErrInvoiceNotFound

// ErrOrderNotFound aliases the order controller sentinel.
var ErrOrderNotFound = order.ErrOrderNotFound

// customerField is one visible billing detail on the rendered invoice.
type customerField struct {
	Label string
	Value string
}

// documentData feeds the invoice document template. Money fields are
// pre-formatted; everything else is escaped by html/template.
type documentData struct {
	Title         string
	InvoiceNumber string
	InvoiceDate   string
	OrderNumber   string
	OrderDate     string
	Address       string
	Theme         string
	PrimaryColor  string
	TextColor     string
	StoreName     string
	Customer      []customerField
	Items         []documentItem
	Subtotal      string
	Tax           string
	ShowTax       bool
	Total         string
}

type documentItem struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

// Renderer renders invoice records as standalone HTML documents, themed and
// filtered by the stored settings.
type Renderer struct {
	db    *gorm.DB
	store config.Store
	tmpl  *template.Template
}

// NewRenderer parses the invoice document template.
func NewRenderer(db *gorm.DB, store config.Store) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}

	return &Renderer{db: db, store: store, tmpl: tmpl}, nil
}

// Render produces the full HTML document for an invoice. A missing invoice
// or missing order is reported with the respective not-found sentinel.
func (r *Renderer) Render(invoiceID uint64) (string, error) {
	record, err := invoicectl.GetByID(r.db, invoiceID)
	if err != nil {
		return "", err
	}

	o, err := order.GetByID(r.db, record.OrderID)
	if err != nil {
		return "", err
	}

	values, err := settings.Load(r.db)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "invoice.gohtml", r.buildData(record, o, values)); err != nil {
		return "", fmt.Errorf("render invoice %d: %w", invoiceID, err)
	}

	return buf.String(), nil
}

func (r *Renderer) buildData(record *models.Invoice, o *models.Order, values settings.Values) documentData {
	defaults := settings.DefaultCatalog().Defaults()
	values = settings.Merge(defaults, values)

	layout := values.String("date_format", "02/01/2006")
	title := values.String("title", "")
	if title == "" {
		title = "Invoice"
	}

	data := documentData{
		Title:         title,
		InvoiceNumber: record.InvoiceNumber,
		InvoiceDate:   record.InvoiceDate.Format(layout),
		OrderNumber:   o.Number,
		OrderDate:     o.CreatedAt.Format(layout),
		Address:       values.String("address", ""),
		Theme:         values.String("theme", "modern"),
		PrimaryColor:  values.String("primary_color", "#667eea"),
		TextColor:     values.String("text_color", "#2d3748"),
		StoreName:     r.store.Name,
		Customer:      r.customerFields(o, values),
		Subtotal:      r.money(o.Subtotal),
		ShowTax:       o.Tax.IsPositive(),
		Tax:           r.money(o.Tax),
		Total:         r.money(o.Total),
	}

	for _, item := range o.Items {
		data.Items = append(data.Items, documentItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: r.money(item.UnitPrice),
			Total:     r.money(item.Total),
		})
	}

	return data
}

// customerFields collects the billing details the settings allow onto the
// invoice, in catalog order.
func (r *Renderer) customerFields(o *models.Order, values settings.Values) []customerField {
	orderNote := ""
	if o.Metadata != nil {
		if v, ok := o.Metadata["order_note"].(string); ok {
			orderNote = v
		}
	}

	candidates := []struct {
		key   string
		label string
		value string
	}{
		{"first_name", "First Name", o.BillingFirstName},
		{"last_name", "Last Name", o.BillingLastName},
		{"company", "Company", o.BillingCompany},
		{"address", "Address", o.BillingAddress},
		{"city", "City", o.BillingCity},
		{"country", "Country", o.BillingCountry},
		{"state", "State", o.BillingState},
		{"zip_code", "Zip Code", o.BillingZip},
		{"email", "Email", o.BillingEmail},
		{"phone", "Phone", o.BillingPhone},
		{"payment_method", "Payment Method", o.PaymentMethod},
		{"transaction_id", "Transaction ID", o.TransactionID},
		{"customer_note", "Customer Note", o.CustomerNote},
		{"order_note", "Order Note", orderNote},
	}

	var fields []customerField
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if !values.Bool("show_field_"+c.key, false) {
			continue
		}
		fields = append(fields, customerField{Label: c.label, Value: c.value})
	}
	return fields
}

// money formats an amount with the configured currency symbol and two
// decimals.
func (r *Renderer) money(amount decimal.Decimal) string {
	return r.store.CurrencySymbol + amount.StringFixed(2)
}
