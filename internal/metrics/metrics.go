// Package metrics expone los indicadores Prometheus de la API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inspectos_api"

// Resultados de caché.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Resultados del scrub.
const (
	ScrubOK     = "ok"
	ScrubCached = "cached"
	ScrubError  = "error"
)

// HTTP
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP (segundos)",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
)

// Panel y caché
var (
	OverviewComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overview_computations_total",
			Help:      "Cálculos completos del panel de márgenes",
		},
	)

	OverviewOrders = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overview_orders",
			Help:      "Pedidos procesados por cálculo del panel",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 6),
		},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Consultas a la caché por espacio de claves y resultado",
		},
		[]string{"cache", "result"},
	)
)

// Scrub
var (
	ScrubRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrub_requests_total",
			Help:      "Scrubs de perfiles públicos por resultado",
		},
		[]string{"result"},
	)

	ScrubFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scrub_fetch_duration_seconds",
			Help:      "Duración de la descarga de perfiles (segundos)",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ProfileExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_extractions_total",
			Help:      "Llamadas al LLM para completar perfiles",
		},
		[]string{"provider", "result"},
	)
)

// RecordHTTPRequest registra una petición HTTP.
func RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordOverview registra un cálculo del panel.
func RecordOverview(orders int) {
	OverviewComputations.Inc()
	OverviewOrders.Observe(float64(orders))
}

// RecordCache registra un acierto o fallo de caché.
func RecordCache(cache string, hit bool) {
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	CacheRequests.WithLabelValues(cache, result).Inc()
}

// RecordScrub registra el resultado de un scrub.
func RecordScrub(result string) {
	ScrubRequests.WithLabelValues(result).Inc()
}

// RecordScrubFetch registra la duración de una descarga.
func RecordScrubFetch(durationSeconds float64) {
	ScrubFetchDuration.Observe(durationSeconds)
}

// RecordProfileExtraction registra una llamada al LLM.
func RecordProfileExtraction(provider string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	ProfileExtractions.WithLabelValues(provider, result).Inc()
}
