package calcwkr

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/fx"

	"fabplan.dev/backend/internal/app/appconfig"
	"fabplan.dev/backend/internal/constant"
	"fabplan.dev/backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	ScheduleService *service.Schedule
	JetStream       nats.JetStreamContext
}

type Worker struct {
	// count counts batches worker has completed so far
	count int

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// timeout bounds a single re-planning batch
	timeout time.Duration

	// deps
	WorkerDeps
}

// planUpdated is the message published after each successful replan so that
// downstream consumers can refetch without polling.
type planUpdated struct {
	GeneratedAt time.Time `msgpack:"generatedAt"`
	Operations  int       `msgpack:"operations"`
	Dropped     int       `msgpack:"dropped"`
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("worker is disabled, re-planning will only happen on cache misses")
		return
	}
	(&Worker{
		interval:   conf.WorkerInterval,
		timeout:    conf.WorkerTimeout,
		WorkerDeps: deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			log.Info().
				Int("count", w.count).
				Msg("worker batch started")

			err := observeCalcDuration(func() error {
				batchCtx, batchCancel := context.WithTimeout(ctx, w.timeout)
				defer batchCancel()

				result, err := w.ScheduleService.Recalculate(batchCtx)
				if err != nil {
					return err
				}
				return w.publish(result.GeneratedAt, len(result.Operations), len(result.Dropped))
			})
			if err != nil {
				log.Error().Err(err).Int("count", w.count).Msg("worker batch failed")
			} else {
				log.Info().Int("count", w.count).Msg("worker batch finished")
			}

			w.count++
			time.Sleep(w.interval)
		}
	}()

	return cancel
}

func (w *Worker) publish(generatedAt time.Time, operations, dropped int) error {
	msg, err := msgpack.Marshal(planUpdated{
		GeneratedAt: generatedAt,
		Operations:  operations,
		Dropped:     dropped,
	})
	if err != nil {
		return err
	}
	_, err = w.JetStream.Publish(constant.PlanUpdatedSubject, msg)
	return err
}

func (w *Worker) Count() int {
	return w.count
}
