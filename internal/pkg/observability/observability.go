package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "fabplanbackend"
)

var (
	WorkerCalcDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "calc_duration_seconds"),
		Help: "Duration of last plan calculation in seconds",
	}, []string{"service"})
	PlanDroppedOperations = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "plan", "dropped_operations"),
		Help: "Number of operations the last plan could not place",
	}, []string{"reason"})
)
