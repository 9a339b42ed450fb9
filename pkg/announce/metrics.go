package announce

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "yunomdns_sessions_open",
		Help: "Number of currently open mDNS sessions.",
	})

	recordsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yunomdns_records_registered_total",
		Help: "Total number of records registered since process start.",
	})

	recordsWithdrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yunomdns_records_withdrawn_total",
		Help: "Total number of records withdrawn since process start.",
	})
)
