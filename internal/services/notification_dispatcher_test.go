package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"retail-order-service/internal/models"
)

func TestNotificationDispatcher_HandleEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("event forwarded to destination topic", func(t *testing.T) {
		mockProducer := &MockProducer{}
		dispatcher := NewNotificationDispatcher(mockProducer)

		event := models.NewOrderCreatedEvent(&models.Order{ID: 1, OrderNumber: 100000001})

		mockProducer.On("PublishTo", ctx, models.DestinationOrders, event).Return(nil)

		err := dispatcher.HandleEvent(ctx, event)

		assert.NoError(t, err)
		mockProducer.AssertExpectations(t)
	})

	t.Run("event without destination dropped", func(t *testing.T) {
		mockProducer := &MockProducer{}
		dispatcher := NewNotificationDispatcher(mockProducer)

		event := models.NewEvent(models.OrderCreatedEvent, "", nil)

		err := dispatcher.HandleEvent(ctx, event)

		assert.NoError(t, err)
		mockProducer.AssertNotCalled(t, "PublishTo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure surfaces for redelivery", func(t *testing.T) {
		mockProducer := &MockProducer{}
		dispatcher := NewNotificationDispatcher(mockProducer)

		event := models.NewOrdersAssignedEvent(1, []int64{10})

		mockProducer.On("PublishTo", ctx, models.DestinationOperators, event).Return(errors.New("broker down"))

		err := dispatcher.HandleEvent(ctx, event)

		assert.Error(t, err)
	})
}
