// Package metrics provides Prometheus metrics for the fulfillment hook.
// Labels stay low-cardinality: no user, session or invocation ids.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IntentRequestsTotal counts handled turns by intent, invocation source
	// and the dialog action returned ("error" when the turn failed).
	IntentRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lexhook_intent_requests_total",
		Help: "Total number of intent turns handled, by intent, source and outcome.",
	}, []string{"intent", "source", "outcome"})

	// ValidationFailuresTotal counts slots re-elicited after failing validation.
	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lexhook_validation_failures_total",
		Help: "Total number of slot validation failures, by intent and slot.",
	}, []string{"intent", "slot"})

	// DevicePublishTotal counts device commands by method and result.
	DevicePublishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lexhook_device_publish_total",
		Help: "Total number of device commands published, by method and result.",
	}, []string{"method", "result"})

	// ShowLookupTotal counts show lookups by result (found, not_found, error).
	ShowLookupTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lexhook_show_lookup_total",
		Help: "Total number of show lookups, by result.",
	}, []string{"result"})

	// JournalWriteTotal counts fulfillment journal writes by result.
	JournalWriteTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lexhook_journal_write_total",
		Help: "Total number of fulfillment journal writes, by result.",
	}, []string{"result"})
)
