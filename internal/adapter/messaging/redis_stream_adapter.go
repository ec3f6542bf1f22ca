package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
)

const (
	eventField      = "event"
	streamMaxLen    = 100000
	defaultReadWait = 5 * time.Second
)

// RedisStreamAdapter carries mutation events over a Redis stream. It is the sink
// for ObservedStore and, through a consumer group, the source for the stream
// service. Entries stay pending until acknowledged, so delivery is at-least-once.
//
// A single adapter must be read from one goroutine.
type RedisStreamAdapter struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string
	count    int64
	block    time.Duration

	pendingDrained bool
}

func NewRedisStreamAdapter(client *redis.Client, stream, group, consumer string, count int) *RedisStreamAdapter {
	if count <= 0 {
		count = 100
	}
	return &RedisStreamAdapter{
		client:   client,
		stream:   stream,
		group:    group,
		consumer: consumer,
		count:    int64(count),
		block:    defaultReadWait,
	}
}

// EnsureGroup creates the stream and consumer group if they do not exist yet.
func (r *RedisStreamAdapter) EnsureGroup(ctx context.Context) error {
	err := r.client.XGroupCreateMkStream(ctx, r.stream, r.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group %s: %w", r.group, err)
	}
	return nil
}

func (r *RedisStreamAdapter) Emit(ctx context.Context, events []domain.MutationEvent) error {
	pipe := r.client.Pipeline()
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode mutation event: %w", err)
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: r.stream,
			MaxLen: streamMaxLen,
			Approx: true,
			Values: map[string]interface{}{eventField: string(payload)},
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append to stream %s: %w", r.stream, err)
	}
	return nil
}

// ReadBatch first re-delivers entries this consumer read but never acknowledged,
// then waits for new ones. An empty batch means the wait timed out.
func (r *RedisStreamAdapter) ReadBatch(ctx context.Context) (domain.MutationBatch, error) {
	if err := ctx.Err(); err != nil {
		return domain.MutationBatch{}, err
	}

	start := ">"
	if !r.pendingDrained {
		start = "0"
	}

	res, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    r.group,
		Consumer: r.consumer,
		Streams:  []string{r.stream, start},
		Count:    r.count,
		Block:    r.block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return domain.MutationBatch{}, nil
	}
	if err != nil {
		return domain.MutationBatch{}, fmt.Errorf("read stream %s: %w", r.stream, err)
	}

	var batch domain.MutationBatch
	for _, s := range res {
		for _, msg := range s.Messages {
			batch.Events = append(batch.Events, decodeEntry(msg))
		}
	}
	if start == "0" && len(batch.Events) == 0 {
		r.pendingDrained = true
	}
	return batch, nil
}

func (r *RedisStreamAdapter) Ack(ctx context.Context, batch domain.MutationBatch) error {
	ids := make([]string, 0, len(batch.Events))
	for _, e := range batch.Events {
		if e.SequenceID != "" {
			ids = append(ids, e.SequenceID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := r.client.XAck(ctx, r.stream, r.group, ids...).Err(); err != nil {
		// The batch stays pending; the next read starts from this consumer's
		// pending list again so it is redelivered.
		r.pendingDrained = false
		return fmt.Errorf("ack %d entries on %s: %w", len(ids), r.stream, err)
	}
	return nil
}

// decodeEntry never drops an entry: an undecodable one comes back with only its
// sequence id so it is still acknowledged, and the filter discards it.
func decodeEntry(msg redis.XMessage) domain.MutationEvent {
	var event domain.MutationEvent
	raw, ok := msg.Values[eventField].(string)
	if !ok {
		common.Logger().Warn("stream: entry without event field", "id", msg.ID)
	} else if err := json.Unmarshal([]byte(raw), &event); err != nil {
		common.Logger().Warn("stream: undecodable entry", "id", msg.ID, "error", err)
		event = domain.MutationEvent{}
	}
	event.SequenceID = msg.ID
	return event
}
