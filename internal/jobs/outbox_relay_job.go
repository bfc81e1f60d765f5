package jobs

import (
	"context"
	"log/slog"
	"time"

	"evashoes/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule drains the outbox every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

const (
	outboxRelayBatchSize  = 100
	outboxRelayMaxBatches = 10
	outboxRelayTimeout    = 30 * time.Second
)

type relayStatusChangesHandler interface {
	Handle(ctx context.Context, cmd commands.RelayStatusChangesCommand) (int, error)
}

// OutboxRelayJob publishes committed order status changes from the outbox.
type OutboxRelayJob struct {
	handler  relayStatusChangesHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the job. An empty schedule means DefaultOutboxRelaySchedule.
// A tick is skipped while the previous one is still draining.
func NewOutboxRelayJob(handler relayStatusChangesHandler, schedule string, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), outboxRelayTimeout)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays full batches until the outbox is drained, a batch fails or
// outboxRelayMaxBatches is reached.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	cmd, err := commands.NewRelayStatusChangesCommand(outboxRelayBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay misconfigured", "error", err)
		return
	}

	total := 0
	for range outboxRelayMaxBatches {
		published, err := j.handler.Handle(ctx, cmd)
		total += published
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "published", total, "error", err)
			return
		}
		if published < outboxRelayBatchSize {
			break
		}
	}

	if total > 0 {
		j.logger.InfoContext(ctx, "Status changes relayed", "published", total)
	}
}

func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
