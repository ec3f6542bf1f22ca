package service

import (
	"context"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/port"
)

// StreamService turns delivered mutation batches into notifications.
type StreamService struct {
	dispatcher *Dispatcher
}

func NewStreamService(dispatcher *Dispatcher) *StreamService {
	return &StreamService{dispatcher: dispatcher}
}

func (s *StreamService) HandleBatch(ctx context.Context, batch domain.MutationBatch) DispatchReport {
	records := FilterBatch(batch)
	if len(records) == 0 {
		return DispatchReport{}
	}

	report := s.dispatcher.Dispatch(ctx, records)
	common.Logger().Info("stream: batch processed",
		"events", len(batch.Events),
		"changed", len(records),
		"published", report.Published,
		"failed", report.Failed,
	)
	return report
}

// Consume reads batches from source until ctx is done. Every batch is acknowledged
// after processing, including batches where some publishes failed.
func (s *StreamService) Consume(ctx context.Context, source port.MutationSource) error {
	logger := common.Logger()
	for {
		batch, err := source.ReadBatch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if len(batch.Events) == 0 {
			continue
		}

		s.HandleBatch(ctx, batch)

		if err := source.Ack(ctx, batch); err != nil {
			logger.Error("stream: ack failed", "events", len(batch.Events), "error", err)
		}
	}
}
