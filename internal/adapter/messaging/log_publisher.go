package messaging

import (
	"context"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
)

// LogPublisher writes notifications to the service log instead of a topic.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, n domain.Notification) error {
	common.Logger().Info("notify: new version",
		"message_id", n.MessageID, "software", n.ID, "name", n.Name, "version", n.Version)
	return nil
}
