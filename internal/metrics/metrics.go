// Package metrics exposes prometheus instrumentation for plan operations.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "sip_"

	ResultSuccess  = "success"
	ResultError    = "error"
	ResultNotFound = "not_found"
	ResultRejected = "rejected"
)

// Plan operations used as label values.
const (
	OperationCreate   = "Create"
	OperationExecute  = "Execute"
	OperationFinalize = "Finalize"
	OperationPause    = "Pause"
	OperationResume   = "Resume"
)

var (
	registerOnce sync.Once

	planOperations *prometheus.CounterVec
	plansByStatus  *prometheus.GaugeVec
	httpRequests   *prometheus.CounterVec
)

// Init registers the collectors with the default registry. Recording
// functions are no-ops until Init has run.
func Init() {
	InitWith(prometheus.DefaultRegisterer)
}

// InitWith registers the collectors with reg. Only the first call of Init or
// InitWith has any effect.
func InitWith(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		planOperations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "plan_operations_total",
				Help: "Total plan lifecycle operations by operation and result",
			},
			[]string{"operation", "result"},
		)
		plansByStatus = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "plans",
				Help: "Current number of plans by status",
			},
			[]string{"status"},
		)
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total API requests by method and status code",
			},
			[]string{"method", "code"},
		)

		reg.MustRegister(planOperations, plansByStatus, httpRequests)
	})
}

// ObservePlanOperation counts one lifecycle operation outcome.
func ObservePlanOperation(operation, result string) {
	if result == "" {
		result = ResultSuccess
	}
	if planOperations != nil {
		planOperations.WithLabelValues(operation, result).Inc()
	}
}

// SetPlansByStatus sets the plan count for one status.
func SetPlansByStatus(status string, count int) {
	if plansByStatus != nil {
		plansByStatus.WithLabelValues(status).Set(float64(count))
	}
}

// ObserveHTTPRequest counts one API request.
func ObserveHTTPRequest(method, code string) {
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, code).Inc()
	}
}

// PlanOperations exposes the operations counter for tests and diagnostics.
func PlanOperations() *prometheus.CounterVec {
	return planOperations
}
