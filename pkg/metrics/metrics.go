// Package metrics registra as métricas Prometheus do serviço
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "abc",
			Name:      "cache_requests_total",
			Help:      "Requisições de classificação por procedência do cache (HIT, MISS, BYPASS).",
		},
		[]string{"status"},
	)

	CacheEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "abc",
			Name:      "cache_evictions_total",
			Help:      "Entradas removidas do cache por invalidação ou expiração.",
		},
	)

	ComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "abc",
			Name:      "compute_duration_seconds",
			Help:      "Duração do ciclo agregar-classificar-persistir.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"scope"},
	)

	StreamSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "abc",
			Name:      "stream_subscribers",
			Help:      "Conexões SSE abertas.",
		},
	)

	StreamDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "abc",
			Name:      "stream_deliveries_total",
			Help:      "Eventos enviados às conexões SSE por resultado.",
		},
		[]string{"event", "outcome"},
	)

	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "abc",
			Name:      "notifications_total",
			Help:      "Publicações de invalidação por resultado.",
		},
		[]string{"outcome"},
	)
)

// Register registra todas as métricas no registry informado
func Register(registerer prometheus.Registerer) {
	registerer.MustRegister(
		CacheRequests,
		CacheEvictions,
		ComputeDuration,
		StreamSubscribers,
		StreamDeliveries,
		Notifications,
	)
}
