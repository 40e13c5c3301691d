// Package main provides the entry point for the GoStoreInvoice service.
// It initializes and runs a web server using the Fiber framework that lets
// shop staff configure invoice appearance, generate invoices for store
// orders, and manage optional addons through an admin web interface. The
// application uses gorm for data persistence and renders invoices from the
// order data and the stored settings.
package main
