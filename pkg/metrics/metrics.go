package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "registrations_total", Help: "Registration attempts by result."},
		[]string{"result"},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "logins_total", Help: "Login attempts by result."},
		[]string{"result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Registrations)
	reg.MustRegister(Logins)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
