package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"retail-order-service/internal/models"
	"retail-order-service/internal/queue"
)

// NotificationDispatcher consumes events from the main topic and fans each
// one out to its destination notification topic.
type NotificationDispatcher struct {
	producer queue.Producer
	logger   *logrus.Entry
}

func NewNotificationDispatcher(producer queue.Producer) *NotificationDispatcher {
	return &NotificationDispatcher{
		producer: producer,
		logger:   logrus.WithField("component", "notification_dispatcher"),
	}
}

func (d *NotificationDispatcher) HandleEvent(ctx context.Context, event *models.Event) error {
	if event.Destination == "" {
		d.logger.WithFields(logrus.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
		}).Warn("Event carries no destination, dropping")
		return nil
	}

	if err := d.producer.PublishTo(ctx, event.Destination, event); err != nil {
		return err
	}

	d.logger.WithFields(logrus.Fields{
		"event_id":    event.ID,
		"event_type":  event.Type,
		"destination": event.Destination,
	}).Debug("Event forwarded to destination topic")

	return nil
}
