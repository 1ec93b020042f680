package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rocketfist_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rocketfist_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rocketfist_registrations_total",
			Help: "Registration state changes by resulting status",
		},
		[]string{"status"},
	)

	CheckInsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rocketfist_check_ins_total",
			Help: "Total number of reservations marked present",
		},
	)

	InstancesExpandedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rocketfist_instances_expanded_total",
			Help: "Class instances produced by recurrence expansion",
		},
		[]string{"result"},
	)

	ExpansionRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rocketfist_expansion_runs_total",
			Help: "Scheduled expansion job runs",
		},
		[]string{"status"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rocketfist_notifications_total",
			Help: "Notification emails by type and outcome",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rocketfist_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordRegistration(status string) {
	RegistrationsTotal.WithLabelValues(status).Inc()
}

func RecordCheckIn() {
	CheckInsTotal.Inc()
}

func RecordExpansion(created, existing int) {
	InstancesExpandedTotal.WithLabelValues("created").Add(float64(created))
	InstancesExpandedTotal.WithLabelValues("existing").Add(float64(existing))
}

func RecordExpansionRun(status string) {
	ExpansionRunsTotal.WithLabelValues(status).Inc()
}

func RecordNotification(kind, status string) {
	NotificationsTotal.WithLabelValues(kind, status).Inc()
}
