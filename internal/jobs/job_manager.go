package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statsReportJob *StatsReportJob
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	statsHandler adminStatsQueryHandler,
	recorder StatsRecorder,
	statsSchedule string,
	relayHandler relayStatusChangesHandler,
	relaySchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statsReportJob: NewStatsReportJob(statsHandler, recorder, statsSchedule, logger),
		outboxRelayJob: NewOutboxRelayJob(relayHandler, relaySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statsReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start stats report job: %w", err)
	}
	if err := jm.outboxRelayJob.Start(); err != nil {
		jm.statsReportJob.Stop()
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
	jm.statsReportJob.Stop()
}
