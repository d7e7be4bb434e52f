package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "microbrands"

// Metrics groups the service collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	visiblePosts *prometheus.HistogramVec
	catalogPosts prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		visiblePosts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gallery_visible_posts",
			Help:      "Number of posts visible after filtering.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"source"}),
		catalogPosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gallery_catalog_posts",
			Help:      "Number of posts in the loaded catalog.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.visiblePosts,
		m.catalogPosts,
	)

	return m
}

// RegisterActiveSessions exposes the live session count through count.
func (m *Metrics) RegisterActiveSessions(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "gallery_active_sessions",
		Help:      "Number of live filter sessions.",
	}, func() float64 {
		return float64(count())
	}))
}

func (m *Metrics) SetCatalogPosts(n int) {
	m.catalogPosts.Set(float64(n))
}

// ObserveVisible records the size of a filtered result. source is "query",
// "session" or "feed".
func (m *Metrics) ObserveVisible(source string, n int) {
	m.visiblePosts.WithLabelValues(source).Observe(float64(n))
}

// Middleware counts requests by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
