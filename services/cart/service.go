package cart

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MarcGrol/shoppingcart/lib/mylog"
	"github.com/MarcGrol/shoppingcart/lib/mymetrics"
	"github.com/MarcGrol/shoppingcart/lib/mytime"
	"github.com/MarcGrol/shoppingcart/services/cart/cartstore"
)

// 1, 2, 4 .. 512 units
var closedUnitsBuckets = prometheus.ExponentialBuckets(1, 2, 10)

type service struct {
	cartStore    cartstore.CartStore
	nower        mytime.Nower
	logger       mylog.Logger
	unitsAdded   prometheus.Counter
	unitsRemoved prometheus.Counter
	cartsClosed  prometheus.Counter
	unitsFree    prometheus.Counter
	closedUnits  prometheus.Histogram
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store cartstore.CartStore, nower mytime.Nower, logger mylog.Logger, metrics *mymetrics.Metrics) *service {
	return &service{
		cartStore:    store,
		nower:        nower,
		logger:       logger,
		unitsAdded:   metrics.NewCounter("units_added_total", "Number of product units added to the cart."),
		unitsRemoved: metrics.NewCounter("units_removed_total", "Number of product units removed from the cart."),
		cartsClosed:  metrics.NewCounter("carts_closed_total", "Number of carts closed for payment."),
		unitsFree:    metrics.NewCounter("units_free_total", "Number of product units given away for free."),
		closedUnits:  metrics.NewHistogram("closed_cart_units", "Number of product units in a cart when it is closed.", closedUnitsBuckets),
	}
}
