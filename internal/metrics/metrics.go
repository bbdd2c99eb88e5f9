// Package metrics exposes the Prometheus collectors shared by the persistence,
// lifecycle, and export layers. Collectors register on the default registry so
// a host process only needs to mount promhttp.Handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreReads counts key reads per storage driver.
	StoreReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: "store",
		Name:      "reads_total",
		Help:      "Number of key reads issued against the persistent store.",
	}, []string{"driver"})

	// StoreWrites counts key writes per storage driver.
	StoreWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: "store",
		Name:      "writes_total",
		Help:      "Number of key writes issued against the persistent store.",
	}, []string{"driver"})

	// SeedRecoveries counts reseeds triggered by an absent or corrupt payload.
	SeedRecoveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: "store",
		Name:      "seed_recoveries_total",
		Help:      "Number of times a bucket was reseeded from built-in sample data.",
	}, []string{"bucket", "cause"})

	// TransitionsApplied counts lifecycle transitions accepted by the engine.
	TransitionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: "lifecycle",
		Name:      "transitions_applied_total",
		Help:      "Number of lifecycle transitions applied, by entity and event.",
	}, []string{"entity", "event"})

	// TransitionsRejected counts lifecycle transitions rejected as invalid.
	TransitionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: "lifecycle",
		Name:      "transitions_rejected_total",
		Help:      "Number of lifecycle transitions rejected, by entity and event.",
	}, []string{"entity", "event"})

	// ExportsWritten counts export artifacts persisted to the blob sink.
	ExportsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: "export",
		Name:      "artifacts_written_total",
		Help:      "Number of export artifacts written, by blob driver.",
	}, []string{"driver"})
)

// Seed recovery causes recorded on SeedRecoveries.
const (
	CauseAbsent  = "absent"
	CauseCorrupt = "corrupt"
)
