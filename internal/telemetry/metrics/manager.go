package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterSyncRuns           *prometheus.CounterVec
	CounterItemsSynced        *prometheus.CounterVec
	CounterRoutineSyncs       prometheus.Counter
	CounterHandleRequestPanic prometheus.Counter

	// gauges
	GaugeSyncsInProgress prometheus.Gauge
	GaugeLifeSignal      prometheus.Gauge

	// histograms
	HistSyncDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("datasync", "test_service", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("datasync", "test_service", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterSyncRuns := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sync_runs",
		Help:      "The total number of plan transition sync runs",
	}, []string{"direction", "outcome"})

	counterItemsSynced := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "items_synced",
		Help:      "The total number of log entries moved between the stores",
	}, []string{"direction"})

	counterRoutineSyncs := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "routine_syncs",
		Help:      "The total number of routine list sync runs",
	})

	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_panic",
		Help:      "The total number of panics while serving requests",
	})

	gaugeSyncsInProgress := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "syncs_in_progress",
		Help:      "The number of sync runs currently in flight",
	})

	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histSyncDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sync_duration_seconds",
		Help:      "Duration of a single sync run",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	return &Manager{
		CounterSyncRuns:           counterSyncRuns,
		CounterItemsSynced:        counterItemsSynced,
		CounterRoutineSyncs:       counterRoutineSyncs,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		GaugeSyncsInProgress:      gaugeSyncsInProgress,
		GaugeLifeSignal:           gaugeLifeSignal,
		HistSyncDuration:          histSyncDuration,
	}
}
