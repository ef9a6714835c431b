package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"retail-order-service/internal/apperrors"
	"retail-order-service/internal/models"
	"retail-order-service/internal/repository"
)

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockRepo, mockProducer)

	products := []models.Product{
		{ID: 1, Name: "Keyboard", Price: 10.0, Amount: 5, Available: true},
		{ID: 2, Name: "Mouse", Price: 5.0, Amount: 3, Available: true},
	}

	tests := []struct {
		name      string
		request   *models.CreateOrderRequest
		setupMock func()
		wantErr   bool
		wantKind  apperrors.Kind
	}{
		{
			name: "successful order creation",
			request: &models.CreateOrderRequest{
				CustomerID:      7,
				DeliveryAddress: "1 Main St",
				DeliveryCost:    2.5,
				ProductIDs:      []int64{1, 2},
			},
			setupMock: func() {
				mockRepo.On("GetProductsByIDs", ctx, []int64{1, 2}).Return(products, nil)
				mockRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil)
				mockProducer.On("PublishEvent", ctx, mock.AnythingOfType("*models.Event")).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unknown product",
			request: &models.CreateOrderRequest{
				CustomerID: 7,
				ProductIDs: []int64{1, 99},
			},
			setupMock: func() {
				mockRepo.On("GetProductsByIDs", ctx, []int64{1, 99}).Return(products[:1], nil)
			},
			wantErr:  true,
			wantKind: apperrors.KindInvalidAttributes,
		},
		{
			name: "invalid product ID",
			request: &models.CreateOrderRequest{
				CustomerID: 7,
				ProductIDs: []int64{0},
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  apperrors.KindInvalidAttributes,
		},
		{
			name: "repository error",
			request: &models.CreateOrderRequest{
				CustomerID: 7,
				ProductIDs: []int64{1, 2},
			},
			setupMock: func() {
				mockRepo.On("GetProductsByIDs", ctx, []int64{1, 2}).Return(products, nil)
				mockRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantKind: apperrors.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			mockProducer.ExpectedCalls = nil

			tt.setupMock()

			order, err := service.CreateOrder(ctx, tt.request)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, order)
				assert.True(t, apperrors.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.Equal(t, tt.request.CustomerID, order.CustomerID)
				assert.Equal(t, models.OrderStatusInitiated, order.Status)
				assert.Equal(t, 15.0, order.ProductCost)
				assert.False(t, order.Paid)
			}

			mockRepo.AssertExpectations(t)
			mockProducer.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateDeliveryDetails(t *testing.T) {
	ctx := context.Background()
	address := "2 Side St"

	t.Run("allowed while initiated", func(t *testing.T) {
		mockRepo := &MockOrderRepository{}
		mockProducer := &MockProducer{}
		service := NewOrderService(mockRepo, mockProducer)

		current := &models.Order{ID: 1, OrderNumber: 100000001, Status: models.OrderStatusInitiated}
		updated := &models.Order{ID: 1, OrderNumber: 100000001, Status: models.OrderStatusInitiated, DeliveryAddress: address}
		update := models.DeliveryDetailsUpdate{DeliveryAddress: &address}

		mockRepo.On("GetOrderByID", ctx, int64(1)).Return(current, nil)
		mockRepo.On("UpdateDeliveryDetails", ctx, int64(1), update).Return(updated, nil)
		mockProducer.On("PublishEvent", ctx, mock.AnythingOfType("*models.Event")).Return(nil)

		order, err := service.UpdateDeliveryDetails(ctx, 1, update)

		assert.NoError(t, err)
		assert.Equal(t, address, order.DeliveryAddress)
		mockRepo.AssertExpectations(t)
	})

	t.Run("refused once processing started", func(t *testing.T) {
		for _, status := range models.AllOrderStatuses() {
			if status == models.OrderStatusInitiated {
				continue
			}

			mockRepo := &MockOrderRepository{}
			mockProducer := &MockProducer{}
			service := NewOrderService(mockRepo, mockProducer)

			mockRepo.On("GetOrderByID", ctx, int64(1)).Return(&models.Order{ID: 1, Status: status}, nil)

			order, err := service.UpdateDeliveryDetails(ctx, 1, models.DeliveryDetailsUpdate{DeliveryAddress: &address})

			assert.Nil(t, order, "status %s", status)
			assert.True(t, apperrors.IsKind(err, apperrors.KindNotAllowed), "status %s", status)
			mockRepo.AssertNotCalled(t, "UpdateDeliveryDetails", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("empty update refused", func(t *testing.T) {
		mockRepo := &MockOrderRepository{}
		mockProducer := &MockProducer{}
		service := NewOrderService(mockRepo, mockProducer)

		order, err := service.UpdateDeliveryDetails(ctx, 1, models.DeliveryDetailsUpdate{})

		assert.Nil(t, order)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidAttributes))
	})

	t.Run("missing order", func(t *testing.T) {
		mockRepo := &MockOrderRepository{}
		mockProducer := &MockProducer{}
		service := NewOrderService(mockRepo, mockProducer)

		mockRepo.On("GetOrderByID", ctx, int64(42)).Return((*models.Order)(nil), repository.ErrNotFound)

		order, err := service.UpdateDeliveryDetails(ctx, 42, models.DeliveryDetailsUpdate{DeliveryAddress: &address})

		assert.Nil(t, order)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestOrderService_TransferToPaid(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}
	service := NewOrderService(mockRepo, mockProducer)

	paid := &models.Order{ID: 1, Status: models.OrderStatusPaid, Paid: true}

	mockRepo.On("UpdateStatus", ctx, int64(1), models.OrderStatusPaid, true).Return(paid, nil)
	mockProducer.On("PublishEvent", ctx, mock.AnythingOfType("*models.Event")).Return(nil)

	order, err := service.TransferToPaid(ctx, 1)

	assert.NoError(t, err)
	assert.True(t, order.Paid)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}
	service := NewOrderService(mockRepo, mockProducer)

	t.Run("invalid status refused", func(t *testing.T) {
		order, err := service.UpdateStatus(ctx, 1, models.OrderStatus("SHIPPED"))

		assert.Nil(t, order)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidAttributes))
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status update does not touch paid flag", func(t *testing.T) {
		sent := &models.Order{ID: 1, Status: models.OrderStatusSent, Paid: true}

		mockRepo.On("UpdateStatus", ctx, int64(1), models.OrderStatusSent, false).Return(sent, nil)
		mockProducer.On("PublishEvent", ctx, mock.AnythingOfType("*models.Event")).Return(nil)

		order, err := service.UpdateStatus(ctx, 1, models.OrderStatusSent)

		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusSent, order.Status)
		mockRepo.AssertExpectations(t)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}
	service := NewOrderService(mockRepo, mockProducer)

	existing := &models.Order{ID: 3, OrderNumber: 100000003, Status: models.OrderStatusCancelled}

	mockRepo.On("GetOrderByID", ctx, int64(3)).Return(existing, nil)
	mockRepo.On("DeleteOrder", ctx, int64(3)).Return(nil)
	mockProducer.On("PublishEvent", ctx, mock.AnythingOfType("*models.Event")).Return(nil)

	err := service.DeleteOrder(ctx, 3)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestOrderService_GetOrdersForCurrentCustomer(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}
	service := NewOrderService(mockRepo, mockProducer)

	t.Run("zero identity refused", func(t *testing.T) {
		orders, err := service.GetOrdersForCurrentCustomer(ctx, models.Identity{})

		assert.Nil(t, orders)
		assert.True(t, apperrors.IsKind(err, apperrors.KindSecurity))
		mockRepo.AssertNotCalled(t, "GetOrdersForCustomer", mock.Anything, mock.Anything)
	})

	t.Run("identity resolved to customer", func(t *testing.T) {
		expected := []*models.Order{{ID: 1, CustomerID: 9}}
		mockRepo.On("GetOrdersForCustomer", ctx, int64(9)).Return(expected, nil)

		orders, err := service.GetOrdersForCurrentCustomer(ctx, models.Identity{UserID: 9, Role: "customer"})

		assert.NoError(t, err)
		assert.Equal(t, expected, orders)
		mockRepo.AssertExpectations(t)
	})
}

func TestOrderService_GetOrdersByCriteria(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}
	service := NewOrderService(mockRepo, mockProducer)

	t.Run("invalid criteria refused", func(t *testing.T) {
		orders, err := service.GetOrdersByCriteria(ctx, models.OrderCriteria{ProductIDs: []int64{-1}})

		assert.Nil(t, orders)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidAttributes))
	})

	t.Run("criteria forwarded", func(t *testing.T) {
		criteria := models.OrderCriteria{Statuses: []models.OrderStatus{models.OrderStatusPaid}}
		expected := []*models.Order{{ID: 1, Status: models.OrderStatusPaid}}

		mockRepo.On("GetOrdersByCriteria", ctx, criteria).Return(expected, nil)

		orders, err := service.GetOrdersByStatuses(ctx, []models.OrderStatus{models.OrderStatusPaid})

		assert.NoError(t, err)
		assert.Equal(t, expected, orders)
		mockRepo.AssertExpectations(t)
	})
}

func TestOrderService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced product refused", func(t *testing.T) {
		mockRepo := &MockOrderRepository{}
		mockProducer := &MockProducer{}
		service := NewOrderService(mockRepo, mockProducer)

		mockRepo.On("GetProduct", ctx, int64(5)).Return(&models.Product{ID: 5, Name: "Cable"}, nil)
		mockRepo.On("CountProductAssignation", ctx, int64(5)).Return(2, nil)

		err := service.DeleteProduct(ctx, 5)

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotAllowed))
		mockRepo.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})

	t.Run("unreferenced product deleted", func(t *testing.T) {
		mockRepo := &MockOrderRepository{}
		mockProducer := &MockProducer{}
		service := NewOrderService(mockRepo, mockProducer)

		mockRepo.On("GetProduct", ctx, int64(5)).Return(&models.Product{ID: 5, Name: "Cable"}, nil)
		mockRepo.On("CountProductAssignation", ctx, int64(5)).Return(0, nil)
		mockRepo.On("DeleteProduct", ctx, int64(5)).Return(nil)
		mockProducer.On("PublishEvent", ctx, mock.AnythingOfType("*models.Event")).Return(nil)

		err := service.DeleteProduct(ctx, 5)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		mockRepo := &MockOrderRepository{}
		mockProducer := &MockProducer{}
		service := NewOrderService(mockRepo, mockProducer)

		mockRepo.On("GetProduct", ctx, int64(5)).Return((*models.Product)(nil), repository.ErrNotFound)

		err := service.DeleteProduct(ctx, 5)

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestOrderService_PublishFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockOrderRepository{}
	mockProducer := &MockProducer{}
	service := NewOrderService(mockRepo, mockProducer)

	paid := &models.Order{ID: 1, Status: models.OrderStatusPaid, Paid: true}

	mockRepo.On("UpdateStatus", ctx, int64(1), models.OrderStatusPaid, true).Return(paid, nil)
	mockProducer.On("PublishEvent", ctx, mock.AnythingOfType("*models.Event")).Return(errors.New("broker down"))

	order, err := service.TransferToPaid(ctx, 1)

	assert.NoError(t, err)
	assert.NotNil(t, order)
}
