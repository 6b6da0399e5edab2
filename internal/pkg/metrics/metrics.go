package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "waymark",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Guide-specific metrics
	FeatureLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "guide",
		Name:      "feature_lookups_total",
		Help:      "Total unary feature lookups, labelled by whether a feature matched",
	}, []string{"result"})

	FeaturesStreamed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "guide",
		Name:      "features_streamed_total",
		Help:      "Total features emitted by range queries",
	})

	RoutesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "guide",
		Name:      "routes_recorded_total",
		Help:      "Total completed route recordings",
	})

	RoutePointsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "guide",
		Name:      "route_points_recorded_total",
		Help:      "Total points received across all route recordings",
	})

	NotesExchanged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "chat",
		Name:      "notes_exchanged_total",
		Help:      "Total notes received on chat calls",
	})

	NoteMatchesReturned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "chat",
		Name:      "note_matches_returned_total",
		Help:      "Total previously seen notes streamed back to chat callers",
	})

	ActiveChatSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "waymark",
		Subsystem: "chat",
		Name:      "active_sessions",
		Help:      "Current number of active chat calls",
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits on range queries",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waymark",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses on range queries",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
