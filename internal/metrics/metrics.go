package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters shared by the ingestion handlers and the edge pipeline.
var (
	RecordsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_records_accepted_total",
		Help: "Attendance records validated and persisted.",
	})
	RecordsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_records_rejected_total",
		Help: "Attendance submissions rejected by validation or the store.",
	})
	SightingsObserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_sightings_observed_total",
		Help: "Advertisements that matched the target filter during a scan window.",
	})
	ReportsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_reports_delivered_total",
		Help: "Sightings acknowledged by the ingestion service.",
	})
	ReportsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_reports_failed_total",
		Help: "Sighting transmissions that failed and were dropped.",
	})
)
