package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total successful user registrations",
		},
	)

	EnrollmentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enrollments_total",
			Help: "Total successful course enrollments",
		},
	)
	EnrollmentsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrollments_rejected_total",
			Help: "Enrollments refused by reason",
		},
		[]string{"reason"}, // full|duplicate|not_found
	)

	CoursesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "courses_created_total",
			Help: "Total courses created",
		},
	)
)

// Handler serves /metrics on both engines.
var Handler = promhttp.Handler

func init() {
	prometheus.MustRegister(RegistrationsTotal, EnrollmentsTotal, EnrollmentsRejected, CoursesCreated)
}
