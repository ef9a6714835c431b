package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"retail-order-service/internal/apperrors"
	"retail-order-service/internal/models"
)

func historyNode(t *testing.T, id int64, previous *int64, event models.OrderHistoryEvent, order models.Order) models.OrderHistoryElement {
	t.Helper()
	state, err := json.Marshal(order)
	assert.NoError(t, err)
	return models.OrderHistoryElement{
		ID:             id,
		OrderNumber:    order.OrderNumber,
		State:          state,
		Event:          event,
		PreviousRecord: previous,
	}
}

func TestHistoryService_GetHistoryForOrder(t *testing.T) {
	ctx := context.Background()
	mockHistory := &MockHistoryRepository{}
	service := NewHistoryService(mockHistory)

	t.Run("invalid order number refused", func(t *testing.T) {
		history, err := service.GetHistoryForOrder(ctx, 0)

		assert.Nil(t, history)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidAttributes))
	})

	t.Run("chain returned oldest first", func(t *testing.T) {
		order := models.Order{ID: 1, OrderNumber: 100000001, Status: models.OrderStatusInitiated}
		first := historyNode(t, 1, nil, models.OrderHistoryCreated, order)

		mockHistory.On("GetHistoryForOrder", ctx, int64(100000001)).
			Return([]models.OrderHistoryElement{first}, nil)

		history, err := service.GetHistoryForOrder(ctx, 100000001)

		assert.NoError(t, err)
		assert.Len(t, history, 1)
		assert.Equal(t, models.OrderHistoryCreated, history[0].Event)
		mockHistory.AssertExpectations(t)
	})
}

func TestHistoryService_ReplayOrderStates(t *testing.T) {
	ctx := context.Background()

	orderNumber := int64(100000001)
	created := models.Order{ID: 1, OrderNumber: orderNumber, Status: models.OrderStatusInitiated}
	paid := models.Order{ID: 1, OrderNumber: orderNumber, Status: models.OrderStatusPaid, Paid: true}
	sent := models.Order{ID: 1, OrderNumber: orderNumber, Status: models.OrderStatusSent, Paid: true}

	one := int64(1)
	two := int64(2)

	t.Run("states decoded newest first", func(t *testing.T) {
		mockHistory := &MockHistoryRepository{}
		service := NewHistoryService(mockHistory)

		chain := []models.OrderHistoryElement{
			historyNode(t, 1, nil, models.OrderHistoryCreated, created),
			historyNode(t, 2, &one, models.OrderHistoryUpdated, paid),
			historyNode(t, 3, &two, models.OrderHistoryUpdated, sent),
		}

		mockHistory.On("GetHistoryForOrder", ctx, orderNumber).Return(chain, nil)

		states, err := service.ReplayOrderStates(ctx, orderNumber)

		assert.NoError(t, err)
		assert.Len(t, states, 3)
		assert.Equal(t, models.OrderStatusSent, states[0].Status)
		assert.Equal(t, models.OrderStatusPaid, states[1].Status)
		assert.Equal(t, models.OrderStatusInitiated, states[2].Status)
	})

	t.Run("broken link detected", func(t *testing.T) {
		mockHistory := &MockHistoryRepository{}
		service := NewHistoryService(mockHistory)

		wrong := int64(99)
		chain := []models.OrderHistoryElement{
			historyNode(t, 1, nil, models.OrderHistoryCreated, created),
			historyNode(t, 2, &wrong, models.OrderHistoryUpdated, paid),
		}

		mockHistory.On("GetHistoryForOrder", ctx, orderNumber).Return(chain, nil)

		states, err := service.ReplayOrderStates(ctx, orderNumber)

		assert.Nil(t, states)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	})

	t.Run("first node must not link backwards", func(t *testing.T) {
		mockHistory := &MockHistoryRepository{}
		service := NewHistoryService(mockHistory)

		chain := []models.OrderHistoryElement{
			historyNode(t, 2, &one, models.OrderHistoryUpdated, paid),
		}

		mockHistory.On("GetHistoryForOrder", ctx, orderNumber).Return(chain, nil)

		states, err := service.ReplayOrderStates(ctx, orderNumber)

		assert.Nil(t, states)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	})

	t.Run("empty chain replays to nothing", func(t *testing.T) {
		mockHistory := &MockHistoryRepository{}
		service := NewHistoryService(mockHistory)

		mockHistory.On("GetHistoryForOrder", ctx, orderNumber).Return([]models.OrderHistoryElement{}, nil)

		states, err := service.ReplayOrderStates(ctx, orderNumber)

		assert.NoError(t, err)
		assert.Empty(t, states)
	})
}
