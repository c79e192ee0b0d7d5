package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "keypad"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"method", "route"})

	responseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_response_size_bytes",
		Help:      "HTTP response body size by route.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 6),
	}, []string{"route"})

	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_in_flight",
		Help:      "HTTP requests being served.",
	})
)

// служебные маршруты не считаются: их дёргают пробы и сам Prometheus
var skipRoutes = map[string]struct{}{
	"/metrics":   {},
	"/liveness":  {},
	"/readyness": {},
}

// PrometheusMetrics считает запросы, их длительность и размер ответа.
// Метка route — шаблон маршрута (/api/v1/sessions/:id), чтобы id сессий не раздували кардинальность.
func PrometheusMetrics(c *gin.Context) {
	route := c.FullPath()
	if _, skip := skipRoutes[route]; skip {
		c.Next()
		return
	}
	if route == "" {
		route = "unmatched"
	}

	inFlight.Inc()
	defer inFlight.Dec()
	start := time.Now()

	c.Next()

	method := c.Request.Method
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
	requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	if size := c.Writer.Size(); size > 0 {
		responseSize.WithLabelValues(route).Observe(float64(size))
	}
}
