package spaces

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels for metrics and logs.
const (
	opCreateRun         = "create_run"
	opCreateTaskSummary = "create_task_summary"
	opFinishRun         = "finish_run"
)

// Outcome labels.
const (
	outcomeOK             = "ok"
	outcomePreflightError = "preflight_error"
	outcomeTransportError = "transport_error"
	outcomeRejected       = "rejected"
	outcomeDecodeError    = "decode_error"
)

var reportRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "beacon_report_requests_total",
		Help: "Total reporting requests by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

// recordRequest increments the reporting request counter.
func recordRequest(operation, outcome string) {
	reportRequests.WithLabelValues(operation, outcome).Inc()
}
