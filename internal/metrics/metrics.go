package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dukkan_orders_placed_total",
		Help: "Orders placed, by payment method.",
	}, []string{"payment_method"})

	TransfersSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dukkan_transfer_simulations_fired_total",
		Help: "Bank-transfer proof simulations that fired and moved an order to PENDING_CONFIRMATION.",
	})

	TransfersStale = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dukkan_transfer_simulations_stale_total",
		Help: "Simulation timers that fired after the order had already left PENDING_PAYMENT.",
	})

	TransfersConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dukkan_transfers_confirmed_total",
		Help: "Bank-transfer orders confirmed by an admin.",
	})
)
