package echoapi

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/smartedu/core/chat"
)

type metrics struct {
	responses   *prometheus.CounterVec
	unavailable prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartedu",
			Subsystem: "chat",
			Name:      "responses_total",
			Help:      "Chat responses by resolved intent, user role and response shape.",
		}, []string{"intent", "role", "shape"}),
		unavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smartedu",
			Subsystem: "chat",
			Name:      "engine_unavailable_total",
			Help:      "Fallback messages answered while the conversational engine was down.",
		}),
	}
	reg.MustRegister(m.responses, m.unavailable)
	return m
}

func (m *metrics) observe(role string, resp chat.Response) {
	shape := "text"
	switch {
	case resp.Table != nil:
		shape = "table"
	case len(resp.Tables) > 0:
		shape = "tables"
	}
	m.responses.WithLabelValues(resp.Intent.String(), role, shape).Inc()

	if resp.EngineDown {
		m.unavailable.Inc()
	}
}
