package main

import (
	"os"

	"github.com/GoStoreInvoice/GoStoreInvoice/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
