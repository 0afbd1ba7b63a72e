package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics counts catalog fetch and cart persistence outcomes.
type StorefrontMetrics struct {
	fetchSuccess *prometheus.CounterVec
	fetchFailure *prometheus.CounterVec
	persistTotal prometheus.Counter
	persistError prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	fetchSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_success",
		Help: "Successful catalog page fetches.",
	}, []string{"kind"})
	fetchFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_failure",
		Help: "Failed catalog page fetches.",
	}, []string{"kind"})
	persistTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_writes",
		Help: "Cart write-through persistence attempts.",
	})
	persistError := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures",
		Help: "Cart write-through persistence failures.",
	})
	reg.MustRegister(fetchSuccess, fetchFailure, persistTotal, persistError)
	return &StorefrontMetrics{
		fetchSuccess: fetchSuccess,
		fetchFailure: fetchFailure,
		persistTotal: persistTotal,
		persistError: persistError,
	}
}

// IncFetchSuccess increments the success counter for a fetch kind (load, refresh).
func (m *StorefrontMetrics) IncFetchSuccess(kind string) {
	if m == nil || m.fetchSuccess == nil {
		return
	}
	m.fetchSuccess.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFetchFailure increments the failure counter for a fetch kind.
func (m *StorefrontMetrics) IncFetchFailure(kind string) {
	if m == nil || m.fetchFailure == nil {
		return
	}
	m.fetchFailure.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncPersistWrite counts one write-through persistence attempt.
func (m *StorefrontMetrics) IncPersistWrite() {
	if m == nil || m.persistTotal == nil {
		return
	}
	m.persistTotal.Inc()
}

// IncPersistFailure counts one failed write-through persistence attempt.
func (m *StorefrontMetrics) IncPersistFailure() {
	if m == nil || m.persistError == nil {
		return
	}
	m.persistError.Inc()
}

func normalizeLabel(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}
