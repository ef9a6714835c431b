package queue

import (
	"context"

	"retail-order-service/internal/models"
)

type Producer interface {
	// PublishEvent sends the event to the main order-events topic.
	PublishEvent(ctx context.Context, event *models.Event) error
	// PublishTo sends the event to an explicit destination topic.
	PublishTo(ctx context.Context, topic string, event *models.Event) error
	Close() error
}

type Consumer interface {
	Subscribe(ctx context.Context, handler EventHandler) error
	Close() error
}

type EventHandler interface {
	HandleEvent(ctx context.Context, event *models.Event) error
}

type EventHandlerFunc func(ctx context.Context, event *models.Event) error

func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *models.Event) error {
	return f(ctx, event)
}
