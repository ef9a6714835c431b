package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"retail-order-service/internal/models"
)

// Mock implementations shared by the service tests.

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrdersForCustomer(ctx context.Context, customerID int64) ([]*models.Order, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrdersAssignedToOperator(ctx context.Context, operatorID int64) ([]*models.Order, error) {
	args := m.Called(ctx, operatorID)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAvailableOrders(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrdersByCriteria(ctx context.Context, criteria models.OrderCriteria) ([]*models.Order, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockOrderRepository) UpdateDeliveryDetails(ctx context.Context, orderID int64, update models.DeliveryDetailsUpdate) (*models.Order, error) {
	args := m.Called(ctx, orderID, update)
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus, markPaid bool) (*models.Order, error) {
	args := m.Called(ctx, orderID, status, markPaid)
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) DeleteOrder(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) AssignProducts(ctx context.Context, orderID int64, productIDs []int64) (*models.Order, error) {
	args := m.Called(ctx, orderID, productIDs)
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) RemoveProducts(ctx context.Context, orderID int64, productIDs []int64) (*models.Order, error) {
	args := m.Called(ctx, orderID, productIDs)
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteProduct(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockOrderRepository) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockOrderRepository) GetProductsByIDs(ctx context.Context, productIDs []int64) ([]models.Product, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockOrderRepository) CountProductAssignation(ctx context.Context, productID int64) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) CountProductsByName(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) OrderCountsByOperator(ctx context.Context) ([]models.OperatorOrderCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.OperatorOrderCount), args.Error(1)
}

func (m *MockOrderRepository) AssignOrdersToOperator(ctx context.Context, orderIDs []int64, operatorID int64) error {
	args := m.Called(ctx, orderIDs, operatorID)
	return args.Error(0)
}

func (m *MockOrderRepository) RemoveOrdersFromOperator(ctx context.Context, operatorID int64, orderIDs []int64) error {
	args := m.Called(ctx, operatorID, orderIDs)
	return args.Error(0)
}

func (m *MockOrderRepository) ReassignOrders(ctx context.Context, fromOperatorID int64, plan map[int64]int64) error {
	args := m.Called(ctx, fromOperatorID, plan)
	return args.Error(0)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) GetHistoryForOrder(ctx context.Context, orderNumber int64) ([]models.OrderHistoryElement, error) {
	args := m.Called(ctx, orderNumber)
	return args.Get(0).([]models.OrderHistoryElement), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishEvent(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProducer) PublishTo(ctx context.Context, topic string, event *models.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
