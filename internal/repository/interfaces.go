package repository

import (
	"context"
	"errors"

	"retail-order-service/internal/models"
)

// ErrNotFound is returned by single-entity reads when the row is absent.
// The service layer maps it to a NOT_FOUND error at its boundary.
var ErrNotFound = errors.New("not found")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error)
	GetOrdersForCustomer(ctx context.Context, customerID int64) ([]*models.Order, error)
	GetOrdersAssignedToOperator(ctx context.Context, operatorID int64) ([]*models.Order, error)
	GetAvailableOrders(ctx context.Context) ([]*models.Order, error)
	GetOrdersByCriteria(ctx context.Context, criteria models.OrderCriteria) ([]*models.Order, error)
	GetOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error)
	UpdateDeliveryDetails(ctx context.Context, orderID int64, update models.DeliveryDetailsUpdate) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus, markPaid bool) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	AssignProducts(ctx context.Context, orderID int64, productIDs []int64) (*models.Order, error)
	RemoveProducts(ctx context.Context, orderID int64, productIDs []int64) (*models.Order, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, productID int64) error
	GetProduct(ctx context.Context, productID int64) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, productIDs []int64) ([]models.Product, error)
	CountProductAssignation(ctx context.Context, productID int64) (int, error)
	CountProductsByName(ctx context.Context, name string) (int, error)

	OrderCountsByOperator(ctx context.Context) ([]models.OperatorOrderCount, error)
	AssignOrdersToOperator(ctx context.Context, orderIDs []int64, operatorID int64) error
	RemoveOrdersFromOperator(ctx context.Context, operatorID int64, orderIDs []int64) error
	ReassignOrders(ctx context.Context, fromOperatorID int64, plan map[int64]int64) error
}

type HistoryRepository interface {
	GetHistoryForOrder(ctx context.Context, orderNumber int64) ([]models.OrderHistoryElement, error)
}
