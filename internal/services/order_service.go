package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"retail-order-service/internal/apperrors"
	"retail-order-service/internal/models"
	"retail-order-service/internal/queue"
	"retail-order-service/internal/repository"
)

// OrderService owns the order lifecycle and the product catalog. Every
// successful mutation publishes a notification event; publishing is
// fire-and-forget and never fails the mutation.
type OrderService struct {
	repo     repository.OrderRepository
	producer queue.Producer
	logger   *logrus.Entry
}

func NewOrderService(repo repository.OrderRepository, producer queue.Producer) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logrus.WithField("component", "order_service"),
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	for _, id := range req.ProductIDs {
		if id < 1 {
			return nil, apperrors.InvalidAttributes("invalid product ID: %d", id)
		}
	}

	products, err := s.repo.GetProductsByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load products: %v", err)
	}
	if len(products) != len(uniqueIDs(req.ProductIDs)) {
		return nil, apperrors.InvalidAttributes("one or more referenced products do not exist")
	}

	order := &models.Order{
		CustomerID:      req.CustomerID,
		BookingTime:     time.Now().UTC(),
		DeliveryAddress: req.DeliveryAddress,
		Products:        products,
		DeliveryCost:    req.DeliveryCost,
		Status:          models.OrderStatusInitiated,
	}
	order.CalculateProductCost()

	if err := order.Validate(); err != nil {
		return nil, apperrors.InvalidAttributes("invalid order: %v", err)
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, apperrors.Internal("failed to create order: %v", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"customer_id":  order.CustomerID,
	}).Info("Order created successfully")

	s.publish(ctx, models.NewOrderCreatedEvent(order))
	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	if orderID < 1 {
		return nil, apperrors.InvalidAttributes("invalid order ID: %d", orderID)
	}
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}
	return order, nil
}

func (s *OrderService) GetOrdersForCustomer(ctx context.Context, customerID int64) ([]*models.Order, error) {
	if customerID < 1 {
		return nil, apperrors.InvalidAttributes("invalid customer ID: %d", customerID)
	}
	orders, err := s.repo.GetOrdersForCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.Internal("failed to load orders: %v", err)
	}
	return orders, nil
}

// GetOrdersForCurrentCustomer resolves the caller from the explicit identity
// handed in by the transport layer.
func (s *OrderService) GetOrdersForCurrentCustomer(ctx context.Context, identity models.Identity) ([]*models.Order, error) {
	if identity.IsZero() {
		return nil, apperrors.Security("no authenticated user in request")
	}
	return s.GetOrdersForCustomer(ctx, identity.UserID)
}

func (s *OrderService) GetAvailableOrders(ctx context.Context) ([]*models.Order, error) {
	orders, err := s.repo.GetAvailableOrders(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load available orders: %v", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrdersByCriteria(ctx context.Context, criteria models.OrderCriteria) ([]*models.Order, error) {
	if err := criteria.Validate(); err != nil {
		return nil, apperrors.InvalidAttributes("invalid criteria: %v", err)
	}
	orders, err := s.repo.GetOrdersByCriteria(ctx, criteria)
	if err != nil {
		return nil, apperrors.Internal("failed to query orders: %v", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrdersByProductIDs(ctx context.Context, productIDs []int64) ([]*models.Order, error) {
	return s.GetOrdersByCriteria(ctx, models.OrderCriteria{ProductIDs: productIDs})
}

func (s *OrderService) GetOrdersByOrderNumbers(ctx context.Context, orderNumbers []int64) ([]*models.Order, error) {
	return s.GetOrdersByCriteria(ctx, models.OrderCriteria{OrderNumbers: orderNumbers})
}

func (s *OrderService) GetOrdersByStatuses(ctx context.Context, statuses []models.OrderStatus) ([]*models.Order, error) {
	return s.GetOrdersByCriteria(ctx, models.OrderCriteria{Statuses: statuses})
}

func (s *OrderService) GetOrdersByBookingTime(ctx context.Context, bottom, top *time.Time) ([]*models.Order, error) {
	return s.GetOrdersByCriteria(ctx, models.OrderCriteria{BookingTimeBottom: bottom, BookingTimeTop: top})
}

func (s *OrderService) GetOrdersByPaidStatus(ctx context.Context, paid bool) ([]*models.Order, error) {
	return s.GetOrdersByCriteria(ctx, models.OrderCriteria{Paid: &paid})
}

func (s *OrderService) GetOrdersByCost(ctx context.Context, bottom, top *float64) ([]*models.Order, error) {
	return s.GetOrdersByCriteria(ctx, models.OrderCriteria{CostBottom: bottom, CostTop: top})
}

func (s *OrderService) GetOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error) {
	if orderID < 1 {
		return nil, apperrors.InvalidAttributes("invalid order ID: %d", orderID)
	}
	products, err := s.repo.GetOrderProducts(ctx, orderID)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}
	return products, nil
}

// UpdateDeliveryDetails changes the delivery address and cost. Only orders
// still in INITIATED state accept delivery edits; once processing has begun
// the details are frozen.
func (s *OrderService) UpdateDeliveryDetails(ctx context.Context, orderID int64, update models.DeliveryDetailsUpdate) (*models.Order, error) {
	if orderID < 1 {
		return nil, apperrors.InvalidAttributes("invalid order ID: %d", orderID)
	}
	if err := update.Validate(); err != nil {
		return nil, apperrors.InvalidAttributes("invalid delivery details: %v", err)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}
	if order.Status != models.OrderStatusInitiated {
		return nil, apperrors.NotAllowed("order delivery details can not be updated, it is already being processed")
	}

	updated, err := s.repo.UpdateDeliveryDetails(ctx, orderID, update)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}

	s.publish(ctx, models.NewOrderUpdatedEvent(updated))
	return updated, nil
}

// TransferToPaid moves the order into PAID state and latches the paid flag.
func (s *OrderService) TransferToPaid(ctx context.Context, orderID int64) (*models.Order, error) {
	if orderID < 1 {
		return nil, apperrors.InvalidAttributes("invalid order ID: %d", orderID)
	}
	order, err := s.repo.UpdateStatus(ctx, orderID, models.OrderStatusPaid, true)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	}).Info("Order transferred to paid")

	s.publish(ctx, models.NewOrderUpdatedEvent(order))
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	if orderID < 1 {
		return nil, apperrors.InvalidAttributes("invalid order ID: %d", orderID)
	}
	if !status.IsValid() {
		return nil, apperrors.InvalidAttributes("invalid order status: %q", status)
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, status, false)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}

	s.publish(ctx, models.NewOrderUpdatedEvent(order))
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID < 1 {
		return apperrors.InvalidAttributes("invalid order ID: %d", orderID)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}

	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		return s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	}).Info("Order deleted successfully")

	s.publish(ctx, models.NewOrderDeletedEvent(order))
	return nil
}

func (s *OrderService) AssignProducts(ctx context.Context, orderID int64, productIDs []int64) (*models.Order, error) {
	if orderID < 1 {
		return nil, apperrors.InvalidAttributes("invalid order ID: %d", orderID)
	}
	if len(productIDs) == 0 {
		return nil, apperrors.InvalidAttributes("no product IDs provided")
	}
	for _, id := range productIDs {
		if id < 1 {
			return nil, apperrors.InvalidAttributes("invalid product ID: %d", id)
		}
	}

	order, err := s.repo.AssignProducts(ctx, orderID, productIDs)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}

	s.publish(ctx, models.NewOrderUpdatedEvent(order))
	return order, nil
}

// RemoveProducts detaches products from the order. A nil slice removes every
// product attached to the order.
func (s *OrderService) RemoveProducts(ctx context.Context, orderID int64, productIDs []int64) (*models.Order, error) {
	if orderID < 1 {
		return nil, apperrors.InvalidAttributes("invalid order ID: %d", orderID)
	}
	if productIDs != nil && len(productIDs) == 0 {
		return nil, apperrors.InvalidAttributes("no product IDs provided")
	}
	for _, id := range productIDs {
		if id < 1 {
			return nil, apperrors.InvalidAttributes("invalid product ID: %d", id)
		}
	}

	order, err := s.repo.RemoveProducts(ctx, orderID, productIDs)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("order %d", orderID))
	}

	s.publish(ctx, models.NewOrderUpdatedEvent(order))
	return order, nil
}

func (s *OrderService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Amount:      req.Amount,
		Available:   req.Available,
		Description: req.Description,
	}
	if err := product.Validate(); err != nil {
		return nil, apperrors.InvalidAttributes("invalid product: %v", err)
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, apperrors.Internal("failed to create product: %v", err)
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created successfully")

	s.publish(ctx, models.NewProductEvent(models.ProductCreatedEvent, product))
	return product, nil
}

func (s *OrderService) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID < 1 {
		return nil, apperrors.InvalidAttributes("invalid product ID: %d", product.ID)
	}
	if err := product.Validate(); err != nil {
		return nil, apperrors.InvalidAttributes("invalid product: %v", err)
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("product %d", product.ID))
	}

	s.publish(ctx, models.NewProductEvent(models.ProductUpdatedEvent, product))
	return product, nil
}

// DeleteProduct removes a product from the catalog. Products still referenced
// by any order are refused to keep history snapshots resolvable.
func (s *OrderService) DeleteProduct(ctx context.Context, productID int64) error {
	if productID < 1 {
		return apperrors.InvalidAttributes("invalid product ID: %d", productID)
	}

	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return s.mapRepoError(err, fmt.Sprintf("product %d", productID))
	}

	assigned, err := s.repo.CountProductAssignation(ctx, productID)
	if err != nil {
		return apperrors.Internal("failed to count product usage: %v", err)
	}
	if assigned > 0 {
		return apperrors.NotAllowed("product can not be deleted because it is in usage")
	}

	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return s.mapRepoError(err, fmt.Sprintf("product %d", productID))
	}

	s.publish(ctx, models.NewProductEvent(models.ProductDeletedEvent, product))
	return nil
}

func (s *OrderService) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	if productID < 1 {
		return nil, apperrors.InvalidAttributes("invalid product ID: %d", productID)
	}
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, s.mapRepoError(err, fmt.Sprintf("product %d", productID))
	}
	return product, nil
}

func (s *OrderService) CountProductAssignation(ctx context.Context, productID int64) (int, error) {
	if productID < 1 {
		return 0, apperrors.InvalidAttributes("invalid product ID: %d", productID)
	}
	count, err := s.repo.CountProductAssignation(ctx, productID)
	if err != nil {
		return 0, apperrors.Internal("failed to count product usage: %v", err)
	}
	return count, nil
}

func (s *OrderService) CountProductsByName(ctx context.Context, name string) (int, error) {
	if name == "" {
		return 0, apperrors.InvalidAttributes("product name must not be empty")
	}
	count, err := s.repo.CountProductsByName(ctx, name)
	if err != nil {
		return 0, apperrors.Internal("failed to count products: %v", err)
	}
	return count, nil
}

func (s *OrderService) mapRepoError(err error, subject string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("%s not found", subject)
	}
	return apperrors.Internal("store failure for %s: %v", subject, err)
}

func (s *OrderService) publish(ctx context.Context, event *models.Event) {
	if err := s.producer.PublishEvent(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
		}).Error("Failed to publish event")
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
