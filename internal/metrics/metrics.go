// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics declares the Prometheus collectors of the offline client.
// Collectors are registered on the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Synchronizer

	SyncDrains = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_sync_drains_total",
			Help: "Synchronizer passes by result",
		},
		[]string{"result"}, // "completed", "partial", "skipped", "deferred", "quota_exceeded", "error"
	)

	SyncDrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wanderlust_sync_drain_duration_seconds",
			Help:    "Duration of synchronizer passes that dispatched at least one operation",
			Buckets: prometheus.DefBuckets,
		},
	)

	SyncOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_sync_operations_total",
			Help: "Dispatched queue operations by type and outcome",
		},
		[]string{"type", "outcome"}, // outcome: "success", "retry", "failed_permanent"
	)

	SyncQueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wanderlust_sync_queue_depth",
			Help: "Queued operations by status after the last status refresh",
		},
		[]string{"status"},
	)

	CachedTrips = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wanderlust_cached_trips",
			Help: "Trips held in the local store",
		},
	)

	StorageQuotaExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wanderlust_storage_quota_exceeded_total",
			Help: "Local writes rejected because the storage quota is used up",
		},
	)

	// Connectivity

	ConnectivityOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wanderlust_connectivity_online",
			Help: "1 when the remote API is reachable, 0 otherwise",
		},
	)

	ConnectivityTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_connectivity_transitions_total",
			Help: "Online/offline transitions",
		},
		[]string{"to"},
	)

	// Interception layer

	InterceptedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_intercepted_requests_total",
			Help: "Intercepted requests by route class and response source",
		},
		[]string{"route_class", "source"},
	)

	// Circuit breaker

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wanderlust_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)
