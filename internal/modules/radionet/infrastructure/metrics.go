package infrastructure

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/ports"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeSkip  = "skipped"
)

// LibraryMetrics holds the collectors recorded by InstrumentedLibrary.
type LibraryMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewLibraryMetrics creates the library collectors and registers them with reg.
func NewLibraryMetrics(reg prometheus.Registerer) *LibraryMetrics {
	m := &LibraryMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radionet",
			Subsystem: "library",
			Name:      "requests_total",
			Help:      "Library requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "radionet",
			Subsystem: "library",
			Name:      "request_duration_seconds",
			Help:      "Library request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(m.requests, m.duration)

	return m
}

// RegisterActiveGuilds exposes the number of guilds with a playing station.
func RegisterActiveGuilds(reg prometheus.Registerer, repo *MemoryRepository) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "radionet",
		Subsystem: "playback",
		Name:      "active_guilds",
		Help:      "Guilds currently playing a station.",
	}, func() float64 {
		return float64(repo.Count())
	}))
}

func (m *LibraryMetrics) observe(operation string, start time.Time, outcome string) {
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// InstrumentedLibrary records metrics for every call to a LibraryProvider.
type InstrumentedLibrary struct {
	next    ports.LibraryProvider
	metrics *LibraryMetrics
}

// NewInstrumentedLibrary wraps a LibraryProvider.
func NewInstrumentedLibrary(next ports.LibraryProvider, metrics *LibraryMetrics) *InstrumentedLibrary {
	return &InstrumentedLibrary{
		next:    next,
		metrics: metrics,
	}
}

// Root returns the wrapped library's root directory.
func (l *InstrumentedLibrary) Root() domain.Ref {
	return l.next.Root()
}

// Lookup records the lookup outcome. URIs outside the scheme count as skipped.
func (l *InstrumentedLibrary) Lookup(
	ctx context.Context,
	uri string,
) ([]domain.Track, bool, error) {
	start := time.Now()
	tracks, ok, err := l.next.Lookup(ctx, uri)

	outcome := outcomeOK
	switch {
	case err != nil:
		outcome = outcomeError
	case !ok:
		outcome = outcomeSkip
	}
	l.metrics.observe("lookup", start, outcome)

	return tracks, ok, err
}

// Browse records the browse outcome.
func (l *InstrumentedLibrary) Browse(ctx context.Context, uri string) ([]domain.Ref, error) {
	start := time.Now()
	refs, err := l.next.Browse(ctx, uri)
	l.metrics.observe("browse", start, outcomeOf(err))
	return refs, err
}

// Search records the search outcome.
func (l *InstrumentedLibrary) Search(
	ctx context.Context,
	query domain.Query,
	uris []string,
	exact bool,
) (domain.SearchResult, error) {
	start := time.Now()
	result, err := l.next.Search(ctx, query, uris, exact)
	l.metrics.observe("search", start, outcomeOf(err))
	return result, err
}

func outcomeOf(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}

// Ensure InstrumentedLibrary implements ports.LibraryProvider.
var _ ports.LibraryProvider = (*InstrumentedLibrary)(nil)
