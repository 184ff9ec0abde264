package jobs

import (
	"context"
	"log/slog"

	"fastfeet/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultNotificationSchedule runs the job every five seconds.
const DefaultNotificationSchedule = "*/5 * * * * *"

// NotificationJob drains the notification outbox on a cron schedule.
type NotificationJob struct {
	handler  commands.SendPendingNotificationsCommandHandler
	cmd      commands.SendPendingNotificationsCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewNotificationJob creates a job that sends at most batchSize notifications
// per run. schedule is a cron expression with a leading seconds field.
func NewNotificationJob(
	handler commands.SendPendingNotificationsCommandHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) (*NotificationJob, error) {
	cmd, err := commands.NewSendPendingNotificationsCommand(batchSize)
	if err != nil {
		return nil, err
	}

	return &NotificationJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "notification_job"),
	}, nil
}

// Start registers the job on its schedule and starts the scheduler.
func (j *NotificationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification job started", "schedule", j.schedule)
	return nil
}

// Run sends one batch. Failures are logged; the unsent notifications stay in
// the outbox for the next run.
func (j *NotificationJob) Run(ctx context.Context) {
	sent, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification job failed", "sent", sent, "error", err)
		return
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "Notifications sent", "sent", sent)
	}
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *NotificationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification job stopped")
}
