package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelContentViews = "content_views"
)

// ViewEvent 阅读事件，推送给管理端实时面板
type ViewEvent struct {
	Type        string    `json:"type"`
	UserID      int64     `json:"user_id"`
	ContentType string    `json:"content_type"`
	ContentID   int64     `json:"content_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishView 发布阅读事件
func (p *Publisher) PublishView(ctx context.Context, event *ViewEvent) error {
	event.Type = "content_view"

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal view event: %w", err)
	}

	return p.client.Publish(ctx, ChannelContentViews, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅阅读事件，阻塞直到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*ViewEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelContentViews)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event ViewEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
