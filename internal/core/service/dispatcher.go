package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/metrics"
	"github.com/rl1809/updatechecker/internal/port"
)

type DispatchReport struct {
	Published int
	Failed    int
	Err       error
}

type Dispatcher struct {
	publisher port.Publisher
	timeout   time.Duration
	now       func() time.Time
}

func NewDispatcher(publisher port.Publisher, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Dispatch publishes one notification per record. A failed publish is recorded in
// the report and does not stop the remaining records.
func (d *Dispatcher) Dispatch(ctx context.Context, records []domain.SoftwareRecord) DispatchReport {
	logger := common.Logger()
	var report DispatchReport
	var errs []error

	for _, rec := range records {
		notification := domain.Notification{
			MessageID:  uuid.NewString(),
			ID:         rec.ID,
			Name:       rec.Name,
			Version:    rec.Version,
			DetectedAt: d.now().UTC(),
		}

		if err := d.publish(ctx, notification); err != nil {
			report.Failed++
			errs = append(errs, fmt.Errorf("%w: %s %s: %w", ErrPublish, rec.ID, rec.Version, err))
			metrics.Publishes.WithLabelValues("error").Inc()
			logger.Error("dispatch: publish failed", "software", rec.ID, "version", rec.Version, "error", err)
			continue
		}

		report.Published++
		metrics.Publishes.WithLabelValues("ok").Inc()
		logger.Debug("dispatch: published", "software", rec.ID, "version", rec.Version, "message_id", notification.MessageID)
	}

	report.Err = errors.Join(errs...)
	return report
}

func (d *Dispatcher) publish(ctx context.Context, notification domain.Notification) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return d.publisher.Publish(ctx, notification)
}
