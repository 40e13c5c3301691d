package config

import (
	"time"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Store     Store
	Webserver Webserver
}

// Store holds shop-level presentation settings that are not part of the
// invoice settings blob (those are editable at runtime through the admin UI).
type Store struct {
	Name           string // shop name printed on invoices
	CurrencySymbol string // currency symbol for formatted amounts
	AddonsDir      string // optional directory scanned for addon manifests
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic        bool    // enable static file browsing (for development purposes only)
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies
	Session             Session // session settings
}
