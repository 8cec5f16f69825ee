package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	coinsInsertedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendomat_coins_inserted_total",
		Help: "Coins inserted into the hopper, by denomination.",
	}, []string{"denomination"})

	purchasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendomat_purchases_total",
		Help: "Successfully completed purchases.",
	})

	purchaseFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendomat_purchase_failures_total",
		Help: "Rejected purchase attempts, by reason.",
	}, []string{"reason"})

	refundsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendomat_refunds_total",
		Help: "Hopper refunds handed back to customers.",
	})
)

type logFunc func(v ...interface{})

func (l logFunc) Println(v ...interface{}) {
	l(v...)
}

// DebugMux serves the prometheus metrics endpoint, intended for a side
// listener separate from the customer API.
func DebugMux() http.Handler {
	sugar := zap.L().Named("debugMux").Sugar()

	s := http.NewServeMux()
	s.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog:      logFunc(sugar.Warn),
		ErrorHandling: promhttp.HTTPErrorOnError,
	}))

	return s
}
