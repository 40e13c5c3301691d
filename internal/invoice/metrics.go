package invoice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// generatedCounter counts invoices created since process start.
var generatedCounter = promauto.NewCounter( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "invoices_generated_total",
		Help: "Number of invoices generated.",
	},
)
