package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pizzeria_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pizzeria_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ordersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pizzeria_orders_created_total",
			Help: "Total number of orders created by type and source",
		},
		[]string{"type", "source"},
	)

	pizzasPricedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pizzeria_pizzas_priced_total",
			Help: "Total number of pizza price calculations served",
		},
	)

	ticketsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pizzeria_kitchen_tickets_published_total",
			Help: "Total number of kitchen tickets published by category",
		},
		[]string{"category"},
	)

	ordersProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pizzeria_orders_processed_total",
			Help: "Total number of orders processed by kitchen workers",
		},
		[]string{"worker"},
	)
)

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest records a completed HTTP request
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// OrderCreated records a newly created order
func OrderCreated(orderType, source string) {
	ordersCreatedTotal.WithLabelValues(orderType, source).Inc()
}

// PizzaPriced records a served price calculation
func PizzaPriced() {
	pizzasPricedTotal.Inc()
}

// TicketPublished records a kitchen ticket publication
func TicketPublished(category string) {
	ticketsPublishedTotal.WithLabelValues(category).Inc()
}

// OrderProcessed records an order completed by a kitchen worker
func OrderProcessed(workerName string) {
	ordersProcessedTotal.WithLabelValues(workerName).Inc()
}
