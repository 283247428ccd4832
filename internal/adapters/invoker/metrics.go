package invoker

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Cache layers reported by the cache hit counter.
const (
	LayerMemory = "memory"
	LayerStore  = "store"
)

const shutdownTimeout = 5 * time.Second

// Metrics holds the executor's Prometheus collectors.
type Metrics struct {
	Invocations prometheus.Counter
	CacheHits   *prometheus.CounterVec
	Failures    prometheus.Counter
	Duration    prometheus.Histogram
}

// NewMetrics creates the executor collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Invocations: factory.NewCounter(prometheus.CounterOpts{
			Name: "morph_invocations_total",
			Help: "Number of transformer invocations requested.",
		}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "morph_cache_hits_total",
			Help: "Number of invocations answered from a cache layer.",
		}, []string{"layer"}),
		Failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "morph_transform_failures_total",
			Help: "Number of failed transformer executions.",
		}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "morph_transform_duration_seconds",
			Help:    "Duration of transformer executions.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ServeMetrics exposes gatherer on addr under /metrics until ctx is done.
func ServeMetrics(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsServerFailed.Error()), "addr", addr)
	}
	return nil
}
