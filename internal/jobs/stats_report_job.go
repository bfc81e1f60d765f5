package jobs

import (
	"context"
	"log/slog"
	"time"

	"evashoes/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStatsReportSchedule runs the report at the top of every minute.
const DefaultStatsReportSchedule = "0 * * * * *"

const statsReportTimeout = 30 * time.Second

type adminStatsQueryHandler interface {
	Handle(ctx context.Context, query queries.GetAdminStatsQuery) (queries.AdminStats, error)
}

// StatsRecorder receives every successful report.
type StatsRecorder interface {
	ObserveStoreStats(products, customers, deliveredOrders, pendingOrders int64, revenue float64)
}

// StatsReportJob periodically reads the back-office counters, logs them and hands
// them to a StatsRecorder.
type StatsReportJob struct {
	handler  adminStatsQueryHandler
	recorder StatsRecorder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatsReportJob creates the job. schedule is a six-field cron expression with
// seconds; an empty one means DefaultStatsReportSchedule.
func NewStatsReportJob(
	handler adminStatsQueryHandler,
	recorder StatsRecorder,
	schedule string,
	logger *slog.Logger,
) *StatsReportJob {
	if schedule == "" {
		schedule = DefaultStatsReportSchedule
	}
	return &StatsReportJob{
		handler:  handler,
		recorder: recorder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stats_report_job"),
	}
}

// Start registers the report with the scheduler and starts it.
func (j *StatsReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), statsReportTimeout)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stats report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report. Failures are logged; the next tick tries again.
func (j *StatsReportJob) Run(ctx context.Context) {
	stats, err := j.handler.Handle(ctx, queries.NewGetAdminStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stats report failed", "error", err)
		return
	}

	revenue := stats.Revenue.Float64()
	j.recorder.ObserveStoreStats(stats.TotalProducts, stats.TotalCustomers, stats.DeliveredOrders, stats.PendingOrders, revenue)
	j.logger.InfoContext(ctx, "Store stats",
		"products", stats.TotalProducts,
		"customers", stats.TotalCustomers,
		"delivered_orders", stats.DeliveredOrders,
		"pending_orders", stats.PendingOrders,
		"revenue", stats.Revenue.String(),
	)
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *StatsReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stats report job stopped")
}
