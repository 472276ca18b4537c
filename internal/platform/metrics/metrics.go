package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gym"

// Metrics holds the application's prometheus collectors.
// All methods are safe on a nil receiver so services can run without metrics.
type Metrics struct {
	httpRequestDuration *prometheus.HistogramVec
	invoicesCreated     *prometheus.CounterVec
	attendanceMarked    *prometheus.CounterVec
	authAttempts        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		invoicesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Invoices appended to the ledger by kind (assign, upgrade, adhoc).",
		}, []string{"kind"}),
		attendanceMarked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_marked_total",
			Help:      "Attendance marks by status and whether a new day record was created.",
		}, []string{"status", "created"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Login attempts by method and outcome.",
		}, []string{"method", "outcome"}),
	}
	reg.MustRegister(m.httpRequestDuration, m.invoicesCreated, m.attendanceMarked, m.authAttempts)
	return m
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// InvoiceCreated counts an appended invoice.
func (m *Metrics) InvoiceCreated(kind string) {
	if m == nil {
		return
	}
	m.invoicesCreated.WithLabelValues(kind).Inc()
}

// AttendanceMarked counts an attendance mark.
func (m *Metrics) AttendanceMarked(status string, created bool) {
	if m == nil {
		return
	}
	m.attendanceMarked.WithLabelValues(status, strconv.FormatBool(created)).Inc()
}

// AuthAttempt counts a login attempt.
func (m *Metrics) AuthAttempt(method string, success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.authAttempts.WithLabelValues(method, outcome).Inc()
}
