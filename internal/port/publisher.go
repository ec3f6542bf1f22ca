package port

import (
	"context"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

type Publisher interface {
	Publish(ctx context.Context, notification domain.Notification) error
}
