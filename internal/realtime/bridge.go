package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	bridgePattern        = "board:*"
	bridgePublishTimeout = 2 * time.Second
)

// bridgeMessage wraps a frame so an instance can skip its own publications
type bridgeMessage struct {
	Origin string          `json:"origin"`
	Topic  string          `json:"topic"`
	Frame  json.RawMessage `json:"frame"`
}

// RedisBridge relays frames between instances over redis pub/sub
type RedisBridge struct {
	client   *redis.Client
	instance string
	logger   *zap.Logger
}

func NewRedisBridge(client *redis.Client, logger *zap.Logger) *RedisBridge {
	return &RedisBridge{
		client:   client,
		instance: uuid.NewString(),
		logger:   logger,
	}
}

// Publish sends in the background so the hub loop never waits on redis
func (b *RedisBridge) Publish(topic string, frame []byte) {
	body, err := json.Marshal(bridgeMessage{Origin: b.instance, Topic: topic, Frame: frame})
	if err != nil {
		b.logger.Warn("Failed to encode bridge message", zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), bridgePublishTimeout)
		defer cancel()
		if err := b.client.Publish(ctx, topic, body).Err(); err != nil {
			b.logger.Warn("Failed to publish realtime event",
				zap.String("topic", topic),
				zap.Error(err))
		}
	}()
}

// Subscribe blocks delivering frames from other instances until ctx ends
func (b *RedisBridge) Subscribe(ctx context.Context, deliver func(topic string, frame []byte)) error {
	pubsub := b.client.PSubscribe(ctx, bridgePattern)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	b.logger.Info("Realtime bridge subscribed", zap.String("pattern", bridgePattern))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.handle(msg.Channel, []byte(msg.Payload), deliver)
		}
	}
}

func (b *RedisBridge) handle(channel string, body []byte, deliver func(topic string, frame []byte)) {
	var m bridgeMessage
	if err := json.Unmarshal(body, &m); err != nil {
		b.logger.Warn("Dropped malformed bridge message", zap.String("channel", channel), zap.Error(err))
		return
	}
	if m.Origin == b.instance {
		return
	}
	if m.Topic != channel || !strings.HasPrefix(m.Topic, "board:") {
		return
	}
	deliver(m.Topic, m.Frame)
}
