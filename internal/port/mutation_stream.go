package port

import (
	"context"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

type MutationSink interface {
	// Emit appends events to the change stream in order
	Emit(ctx context.Context, events []domain.MutationEvent) error
}

type MutationSource interface {
	// ReadBatch blocks until a batch is available or ctx is done
	ReadBatch(ctx context.Context) (domain.MutationBatch, error)

	// Ack marks every event of the batch as processed
	Ack(ctx context.Context, batch domain.MutationBatch) error
}
