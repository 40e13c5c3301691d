package settings

import "time"

// Tab is one named group of fields on the settings page.
type Tab struct {
	ID     string
	Title  string
	Icon   string
	Fields []Field
}

// Catalog is the declarative description of every configurable setting,
// grouped into tabs. It is static data; handlers and addons share one
// instance.
type Catalog struct {
	Tabs []Tab
}

// Tab returns the tab with the given id.
func (c *Catalog) Tab(id string) (Tab, bool) {
	for _, t := range c.Tabs {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

// Fields returns the top-level fields of every tab in declaration order.
func (c *Catalog) Fields() []Field {
	var fields []Field
	for _, t := range c.Tabs {
		fields = append(fields, t.Fields...)
	}
	return fields
}

// Defaults returns the catalog defaults keyed by resolved field name.
// Group children are flattened to their own keys, matching how values are
// stored.
func (c *Catalog) Defaults() Values {
	defaults := Values{}
	var collect func(fields []Field)
	collect = func(fields []Field) {
		for _, f := range fields {
			if f.Type == TypeGroup {
				collect(f.Fields)
				continue
			}
			if f.Default != nil {
				defaults[f.ResolveName()] = f.Default
			}
		}
	}
	collect(c.Fields())
	return defaults
}

// DefaultCatalog builds the built-in catalog: the General tab (numbering,
// branding, visible customer fields) and the Theme tab (style, colors,
// custom fonts).
func DefaultCatalog() *Catalog {
	return &Catalog{
		Tabs: []Tab{
			{
				ID:     "general",
				Title:  "General",
				Icon:   "settings",
				Fields: generalFields(),
			},
			{
				ID:     "theme",
				Title:  "Theme",
				Icon:   "palette",
				Fields: themeFields(),
			},
		},
	}
}

func generalFields() []Field {
	return []Field{
		{
			ID:          "invoice_prefix",
			Type:        TypeText,
			Label:       "Invoice Prefix",
			Description: "Prefix for invoice numbers (e.g., INV-, FA-, INVOICE-).",
			Placeholder: "INV-",
			Default:     "INV-",
			Required:    true,
		},
		{
			ID:          "title",
			Type:        TypeText,
			Label:       "Title",
			Description: "Invoice title displayed on the invoice document.",
			Placeholder: "Invoice",
			Default:     "",
		},
		{
			ID:          "logo_id",
			Type:        TypeMedia,
			Label:       "Logo",
			Description: "Upload your company logo to display on invoices.",
			ButtonText:  "Upload Logo",
			RemoveText:  "Remove Logo",
			Default:     0,
		},
		{
			ID:          "signature_id",
			Type:        TypeMedia,
			Label:       "Signature",
			Description: "Upload a signature image to display on invoices.",
			ButtonText:  "Upload Signature",
			RemoveText:  "Remove Signature",
			Default:     0,
		},
		{
			ID:          "address",
			Type:        TypeTextarea,
			Label:       "Address",
			Description: "Business address displayed on invoices.",
			Placeholder: "Enter your business address",
			Rows:        4,
			Default:     "",
		},
		{
			ID:          "date_format",
			Type:        TypeSelect,
			Label:       "Date Format",
			Description: "Choose how dates are displayed on invoices.",
			Options:     dateFormatOptions(),
			Default:     "02/01/2006",
		},
		{
			ID:          "fields",
			Type:        TypeGroup,
			Label:       "Fields",
			Description: "Select which fields to display on invoices.",
			Fields:      visibilityFields(),
		},
	}
}

func themeFields() []Field {
	return []Field{
		{
			ID:          "theme",
			Type:        TypeSelect,
			Label:       "Select Theme",
			Description: "Choose the theme style for your invoices.",
			Options: []Option{
				{Value: "modern", Label: "Modern"},
				{Value: "flat", Label: "Flat"},
				{Value: "simple", Label: "Simple"},
				{Value: "classic", Label: "Classic"},
			},
			Default: "modern",
		},
		{
			ID:          "primary_color",
			Type:        TypeColor,
			Label:       "Primary Color",
			Description: "Primary color used in the invoice theme.",
			Default:     "#667eea",
		},
		{
			ID:          "text_color",
			Type:        TypeColor,
			Label:       "Text Color",
			Description: "Main text color for invoice content.",
			Default:     "#2d3748",
		},
		{
			ID:          "fonts",
			Type:        TypeGroup,
			Label:       "Font Family",
			Description: "Upload custom font files for your invoices. Supported formats: TTF, WOFF, WOFF2, EOT, SVG",
			Fields:      fontFields(),
		},
	}
}

// dateFormatOptions labels each layout with today's date rendered in it.
func dateFormatOptions() []Option {
	layouts := []string{
		"02/01/2006",
		"01/02/2006",
		"2006-01-02",
		"January 2, 2006",
		"2 January 2006",
		"02 Jan 2006",
	}

	now := time.Now()
	options := make([]Option, 0, len(layouts))
	for _, layout := range layouts {
		options = append(options, Option{
			Value: layout,
			Label: now.Format(layout) + " (" + layout + ")",
		})
	}
	return options
}

// visibilityFields builds one switch per customer field that can appear on an
// invoice. Transaction id and the two note fields default to hidden.
func visibilityFields() []Field {
	labels := []struct {
		id    string
		label string
	}{
		{"first_name", "First Name"},
		{"last_name", "Last Name"},
		{"company", "Company"},
		{"address", "Address"},
		{"city", "City"},
		{"country", "Country"},
		{"state", "State"},
		{"zip_code", "Zip Code"},
		{"email", "Email"},
		{"phone", "Phone"},
		{"payment_method", "Payment Method"},
		{"transaction_id", "Transaction ID"},
		{"customer_note", "Customer Note"},
		{"order_note", "Order Note"},
	}

	offByDefault := map[string]bool{
		"transaction_id": true,
		"customer_note":  true,
		"order_note":     true,
	}

	fields := make([]Field, 0, len(labels))
	for _, l := range labels {
		fields = append(fields, Field{
			ID:          l.id,
			Type:        TypeSwitch,
			Name:        "show_field_" + l.id,
			Label:       l.label,
			Description: "Display customer " + l.label + " on invoice",
			Default:     !offByDefault[l.id],
		})
	}
	return fields
}

// fontFields builds one custom upload field per supported font format. The
// renderer for these is registered by the fontpack addon.
func fontFields() []Field {
	formats := []string{"ttf", "woff", "woff2", "eot", "svg"}

	fields := make([]Field, 0, len(formats))
	for _, format := range formats {
		fields = append(fields, Field{
			ID:       "font_" + format + "_id",
			Type:     TypeCustom,
			Callback: "font_upload",
			Format:   format,
			Default:  0,
			Sanitize: sanitizeMediaValue,
		})
	}
	return fields
}
