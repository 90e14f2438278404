package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/user"
	"github.com/iota-uz/authgate/pkg/eventbus"
)

var loginOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "authgate_login_outcomes_total",
		Help: "Login, logout, and org switch outcomes by status.",
	},
	[]string{"status"},
)

// TrackLoginEvents counts every published login event. Subscribing is
// fire-and-forget on the bus, so a counter problem can never fail a login.
func TrackLoginEvents(bus eventbus.EventBus) {
	bus.Subscribe(func(e *user.LoginEvent) {
		loginOutcomes.WithLabelValues(string(e.Status)).Inc()
	})
}
