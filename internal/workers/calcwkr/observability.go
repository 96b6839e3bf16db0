package calcwkr

import (
	"time"

	"fabplan.dev/backend/internal/pkg/observability"
)

func observeCalcDuration(f func() error) error {
	start := time.Now()
	defer func() {
		dur := time.Since(start)
		observability.WorkerCalcDuration.WithLabelValues("schedule").Set(float64(dur.Seconds()))
	}()
	return f()
}
