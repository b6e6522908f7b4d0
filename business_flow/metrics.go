package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Interviews committed, partitioned by interview type and visibility
	interviewsProvisionedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviews_provisioned_total",
			Help: "Total number of interview aggregates committed",
		},
		[]string{"interview_type", "public"},
	)

	// Saga compensations, partitioned by the step that failed
	provisioningCompensationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_provisioning_compensations_total",
			Help: "Total number of interview aggregates rolled back by compensation",
		},
		[]string{"failed_step"},
	)

	// Provisioning requests that returned an error to the caller
	provisioningFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_provisioning_failures_total",
			Help: "Total number of failed provisioning requests",
		},
		[]string{"code"},
	)
)

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
