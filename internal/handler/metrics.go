package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var recordWrites = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tender_crm",
		Subsystem: "http",
		Name:      "record_writes_total",
		Help:      "Total number of create/update/delete operations per resource.",
	},
	[]string{"resource", "op", "outcome"},
)
