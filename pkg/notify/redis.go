package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBridge mirrors bus traffic over a redis pub/sub channel so that
// invalidation reaches every instance behind a load balancer. Local
// publishes are re-broadcast remotely; remote messages are replayed onto
// the local bus.
type RedisBridge struct {
	client  *redis.Client
	channel string
	bus     *Bus
	logger  *zap.Logger
	cancel  context.CancelFunc
}

// NewRedisBridge wires the bus to the given channel and starts the
// subscriber goroutine.
func NewRedisBridge(client *redis.Client, channel string, bus *Bus, logger *zap.Logger) *RedisBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	bridge := &RedisBridge{
		client:  client,
		channel: channel,
		bus:     bus,
		logger:  logger,
		cancel:  cancel,
	}
	go bridge.listen(ctx)
	return bridge
}

// Publish sends a table-change notification to all instances.
func (b *RedisBridge) Publish(table string) {
	b.bus.Publish(table)
	if err := b.client.Publish(context.Background(), b.channel, table).Err(); err != nil {
		b.logger.Warn("redis notify publish failed", zap.String("table", table), zap.Error(err))
	}
}

// Close stops the subscriber goroutine.
func (b *RedisBridge) Close() {
	b.cancel()
}

func (b *RedisBridge) listen(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close() //nolint:errcheck

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.bus.Publish(msg.Payload)
		}
	}
}
