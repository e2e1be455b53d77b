package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// Metrics exposes application-level instruments for the ingestion pipeline.
type Metrics struct {
	SyncRuns        *prometheus.CounterVec
	AccountsSynced  *prometheus.CounterVec
	EventsIngested  *prometheus.CounterVec
	AggregationRuns *prometheus.CounterVec
	AggregationTime prometheus.Histogram
}

// New registers the pipeline instruments on the given registerer.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatorpulse_sync_runs_total",
			Help: "Sync orchestrator runs by outcome.",
		}, []string{"status"}),
		AccountsSynced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatorpulse_accounts_synced_total",
			Help: "Per-account sync outcomes by platform.",
		}, []string{"platform", "outcome"}),
		EventsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatorpulse_activity_events_total",
			Help: "Activity events recorded by event type.",
		}, []string{"event_type"}),
		AggregationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creatorpulse_aggregation_runs_total",
			Help: "Aggregation recomputes by outcome.",
		}, []string{"status"}),
		AggregationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "creatorpulse_aggregation_duration_seconds",
			Help:    "Wall time of a full per-user aggregation recompute.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	collectors := []prometheus.Collector{
		m.SyncRuns,
		m.AccountsSynced,
		m.EventsIngested,
		m.AggregationRuns,
		m.AggregationTime,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

var Module = fx.Module("observability.metrics",
	fx.Provide(NewRegistry),
	fx.Provide(New),
)
