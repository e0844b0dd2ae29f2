package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/registry"
)

// Metrics holds the Prometheus collectors fed by machine hooks.
type Metrics struct {
	registerer prometheus.Registerer

	enters      *prometheus.CounterVec
	exits       *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with r.
// A nil Registerer selects prometheus.DefaultRegisterer.
func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	if r == nil {
		r = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		registerer: r,
		enters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hfsm_state_enters_total",
				Help: "Total number of state entries",
			},
			[]string{"machine", "state"},
		),
		exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hfsm_state_exits_total",
				Help: "Total number of state exits",
			},
			[]string{"machine", "state"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hfsm_transitions_total",
				Help: "Total number of transitions taken",
			},
			[]string{"machine", "from", "to"},
		),
	}

	for _, c := range []prometheus.Collector{m.enters, m.exits, m.transitions} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// TrackRegistry exports the number of live machines held by reg.
func (m *Metrics) TrackRegistry(reg *registry.Registry) error {
	return m.registerer.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "hfsm_machines_live",
			Help: "Number of machines built and not yet destroyed",
		},
		func() float64 { return float64(reg.Len()) },
	))
}

// Hooks returns machine hooks recording into the collectors.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnEnter: func(e *domain.MachineEvent) {
			m.enters.WithLabelValues(e.MachineName, e.StateName).Inc()
		},
		OnExit: func(e *domain.MachineEvent) {
			m.exits.WithLabelValues(e.MachineName, e.StateName).Inc()
		},
		OnTransition: func(e *domain.MachineEvent) {
			m.transitions.WithLabelValues(e.MachineName, e.FromName, e.StateName).Inc()
		},
	}
}
