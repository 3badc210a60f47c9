package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartMutationsTotal counts cart mutations by operation.
	CartMutationsTotal *prometheus.CounterVec
	// CartItemsGauge tracks the number of live carts.
	CartItemsGauge prometheus.Gauge
	// CatalogLookupsTotal counts catalog lookups by kind and outcome.
	CatalogLookupsTotal *prometheus.CounterVec
	// EventsEmittedTotal counts domain events fanned out to notifiers.
	EventsEmittedTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Count of cart mutations by operation and outcome.",
		}, []string{"op", "result"})
		CartItemsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "carts_live",
			Help:      "Number of carts currently held in memory.",
		})
		CatalogLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_lookups_total",
			Help:      "Count of catalog lookups by kind and outcome.",
		}, []string{"kind", "result"})
		EventsEmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_emitted_total",
			Help:      "Count of domain events emitted by topic.",
		}, []string{"topic"})

		mustRegisterCollector(reg, CartMutationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartMutationsTotal = v
			}
		})
		mustRegisterCollector(reg, CartItemsGauge, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Gauge); ok {
				CartItemsGauge = v
			}
		})
		mustRegisterCollector(reg, CatalogLookupsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogLookupsTotal = v
			}
		})
		mustRegisterCollector(reg, EventsEmittedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				EventsEmittedTotal = v
			}
		})
	})
}

// ObserveCartMutation records a cart mutation outcome. Safe to call before
// metrics are registered.
func ObserveCartMutation(op, result string) {
	if CartMutationsTotal != nil {
		CartMutationsTotal.WithLabelValues(op, result).Inc()
	}
}

// SetLiveCarts records the current number of in-memory carts.
func SetLiveCarts(n int) {
	if CartItemsGauge != nil {
		CartItemsGauge.Set(float64(n))
	}
}

// ObserveCatalogLookup records a catalog lookup outcome.
func ObserveCatalogLookup(kind, result string) {
	if CatalogLookupsTotal != nil {
		CatalogLookupsTotal.WithLabelValues(kind, result).Inc()
	}
}

// ObserveEventEmitted records a fanned-out domain event.
func ObserveEventEmitted(topic string) {
	if EventsEmittedTotal != nil {
		EventsEmittedTotal.WithLabelValues(topic).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
