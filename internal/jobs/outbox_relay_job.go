package jobs

import (
	"context"
	"sync"

	"parcel/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

// OutboxRelay is the command handler the job drives.
type OutboxRelay interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes pending outbox messages on a cron schedule. Runs never
// overlap: a tick that fires while the previous batch is still publishing is skipped.
type OutboxRelayJob struct {
	relay     OutboxRelay
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewOutboxRelayJob creates the relay job. schedule uses the six-field cron syntax with
// seconds.
func NewOutboxRelayJob(relay OutboxRelay, schedule string, batchSize int, logger *zap.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}
	return &OutboxRelayJob{
		relay:     relay,
		schedule:  schedule,
		batchSize: batchSize,
		logger:    logger.With(zap.String("component", "outbox_relay_job")),
	}
}

// Start schedules the job. It fails on an invalid schedule.
func (j *OutboxRelayJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return nil
	}

	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(j.schedule, j.RunOnce); err != nil {
		return err
	}

	j.ctx, j.cancel = context.WithCancel(context.Background())
	j.cron = c
	j.running = true
	c.Start()

	j.logger.Info("outbox relay job started", zap.String("schedule", j.schedule))
	return nil
}

// RunOnce relays a single batch.
func (j *OutboxRelayJob) RunOnce() {
	ctx := j.context()

	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.Error("invalid relay command", zap.Error(err))
		return
	}

	published, err := j.relay.Handle(ctx, cmd)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		j.logger.Error("outbox relay failed", zap.Error(err), zap.Int("published", published))
		return
	}
	if published > 0 {
		j.logger.Debug("outbox messages published", zap.Int("published", published))
	}
}

// Stop unschedules the job and waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	c, cancel := j.cron, j.cancel
	j.mu.Unlock()

	<-c.Stop().Done()
	cancel()
	j.logger.Info("outbox relay job stopped")
}

func (j *OutboxRelayJob) context() context.Context {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.ctx == nil {
		return context.Background()
	}
	return j.ctx
}
