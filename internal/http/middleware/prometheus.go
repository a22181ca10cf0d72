package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMiddleware holds the HTTP and pipeline metrics.
type PrometheusMiddleware struct {
	requestCount *prometheus.CounterVec
	applications *prometheus.CounterVec
}

// NewPrometheusMiddleware creates a new PrometheusMiddleware and registers
// its collectors on reg.
func NewPrometheusMiddleware(reg prometheus.Registerer) (*PrometheusMiddleware, error) {
	m := &PrometheusMiddleware{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		applications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "applications_processed_total",
				Help: "Total number of application submissions by outcome.",
			},
			[]string{"outcome"},
		),
	}

	if err := reg.Register(m.requestCount); err != nil {
		return nil, err
	}
	if err := reg.Register(m.applications); err != nil {
		return nil, err
	}

	return m, nil
}

// Handler returns the fiber middleware handler.
func (m *PrometheusMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Exclude /metrics from being counted
		if c.Path() == "/metrics" {
			return c.Next()
		}

		err := c.Next()

		// Get path pattern (e.g., /api/candidates/:id instead of the raw URL)
		path := c.Route().Path
		if path == "" {
			path = c.Path() // Fallback to raw path if route not found (e.g. 404)
		}

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.requestCount.WithLabelValues(
			c.Method(),
			path,
			strconv.Itoa(status),
		).Inc()

		if c.Method() == fiber.MethodPost && path == "/api/process-application" {
			outcome := "accepted"
			if status >= 400 {
				outcome = "rejected"
			}
			m.applications.WithLabelValues(outcome).Inc()
		}

		return err
	}
}
