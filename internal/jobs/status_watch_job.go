package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultStatusWatchSchedule    = "*/5 * * * * *"
	DefaultStatusWatchConcurrency = 4

	statusWatchBatchSize = 500
)

// StatusWatchJob is the only publisher of order.status.changed. Each poll picks
// the orders whose unified status moved past the last announced one, claims the
// change in the database and publishes it.
type StatusWatchJob struct {
	announcements ports.StatusAnnouncements
	publisher     ports.EventPublisher
	schedule      string
	concurrency   int
	cron          *cron.Cron
	logger        *slog.Logger

	mu sync.Mutex
}

// NewStatusWatchJob creates the job. An empty schedule or a non-positive
// concurrency falls back to the defaults.
func NewStatusWatchJob(
	announcements ports.StatusAnnouncements,
	publisher ports.EventPublisher,
	schedule string,
	concurrency int,
	logger *slog.Logger,
) *StatusWatchJob {
	if schedule == "" {
		schedule = DefaultStatusWatchSchedule
	}
	if concurrency <= 0 {
		concurrency = DefaultStatusWatchConcurrency
	}

	return &StatusWatchJob{
		announcements: announcements,
		publisher:     publisher,
		schedule:      schedule,
		concurrency:   concurrency,
		cron:          cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:        logger.With("component", "status_watch_job"),
	}
}

// Start schedules the poll.
func (j *StatusWatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Poll(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Status watch job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status watch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running poll to finish.
func (j *StatusWatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status watch job stopped")
}

// Poll runs one watch cycle. Every order is handled even when another fails;
// the first error is returned.
func (j *StatusWatchJob) Poll(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	pending, err := j.announcements.ListPending(ctx, statusWatchBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list pending status changes: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(j.concurrency)

	for _, p := range pending {
		g.Go(func() error {
			return j.announce(ctx, p)
		})
	}

	return g.Wait()
}

func (j *StatusWatchJob) announce(ctx context.Context, pending ports.PendingAnnouncement) error {
	id := pending.OrderID
	previous := pending.Announced
	current := order.UnifyStatuses(pending.PartStatuses)

	claimed, err := j.announcements.Claim(ctx, pending, current)
	if err != nil {
		return fmt.Errorf("failed to claim status change of order %s: %w", id, err)
	}
	if !claimed || current == previous {
		return nil
	}

	event := ports.StatusChangedEvent{
		OrderID:    id,
		Previous:   previous,
		Current:    current,
		OccurredAt: time.Now().UTC(),
	}

	if err = j.publisher.PublishStatusChanged(ctx, event); err != nil {
		j.logger.ErrorContext(ctx, "Failed to publish status change",
			"order_id", id.String(),
			"previous", previous.String(),
			"current", current.String(),
			"error", err,
		)

		if releaseErr := j.announcements.Release(ctx, id, current, previous); releaseErr != nil {
			return fmt.Errorf("failed to release status change of order %s: %w", id, releaseErr)
		}
		return nil
	}

	j.logger.InfoContext(ctx, "Order status changed",
		"order_id", id.String(),
		"previous", previous.String(),
		"current", current.String(),
	)
	return nil
}
