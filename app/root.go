// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-store-invoice",
	Short: "GoStoreInvoice is a web-based invoice manager for store orders",
	Long: `GoStoreInvoice is a web-based invoice manager for store orders
that provides an admin interface for configuring invoice appearance,
generating per-order invoices, and managing optional addons.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
