// Package metrics экспортирует в Prometheus статистику разрешения селекторов.
package metrics

import (
	"github.com/annel0/combo-targeting/internal/targeting"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeFound  = "found"
	outcomeAbsent = "absent"
)

// ResolverMetrics считает разрешения селекторов по исходу (найдена сущность или нет).
// Подключается к Resolver через targeting.WithObserver.
type ResolverMetrics struct {
	resolutions *prometheus.CounterVec
}

// NewResolverMetrics создаёт счётчики и регистрирует их в reg.
// При reg == nil используется глобальный регистр Prometheus.
func NewResolverMetrics(namespace string, reg prometheus.Registerer) *ResolverMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	rm := &ResolverMetrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selector_resolutions_total",
			Help:      "Число разрешений селекторов цели по исходу.",
		}, []string{"selector", "outcome"}),
	}

	reg.MustRegister(rm.resolutions)
	return rm
}

// ObserveResolution учитывает одно разрешение селектора
func (rm *ResolverMetrics) ObserveResolution(sel targeting.Selector, found bool) {
	rm.resolutions.WithLabelValues(sel.String(), outcomeLabel(found)).Inc()
}

func outcomeLabel(found bool) string {
	if found {
		return outcomeFound
	}
	return outcomeAbsent
}

var _ targeting.Observer = (*ResolverMetrics)(nil)
