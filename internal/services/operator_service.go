package services

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
	"retail-order-service/internal/apperrors"
	"retail-order-service/internal/models"
	"retail-order-service/internal/queue"
	"retail-order-service/internal/repository"
)

// DefaultOrderLimit caps how many orders a single operator may hold when no
// explicit limit is configured.
const DefaultOrderLimit = 50

// OperatorService balances orders across operators. Redistribution is
// plan-then-commit: the full assignment plan is computed in memory first and
// written in one transaction only if every order fits under the limit, so a
// capacity failure leaves the store untouched.
type OperatorService struct {
	repo       repository.OrderRepository
	producer   queue.Producer
	orderLimit int
	logger     *logrus.Entry
}

func NewOperatorService(repo repository.OrderRepository, producer queue.Producer, orderLimit int) *OperatorService {
	if orderLimit <= 0 {
		orderLimit = DefaultOrderLimit
	}
	return &OperatorService{
		repo:       repo,
		producer:   producer,
		orderLimit: orderLimit,
		logger:     logrus.WithField("component", "operator_service"),
	}
}

func (s *OperatorService) OrderLimit() int {
	return s.orderLimit
}

func (s *OperatorService) OrderCountsByOperator(ctx context.Context) ([]models.OperatorOrderCount, error) {
	counts, err := s.repo.OrderCountsByOperator(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load operator order counts: %v", err)
	}
	return counts, nil
}

func (s *OperatorService) GetOrdersAssignedToOperator(ctx context.Context, operatorID int64) ([]*models.Order, error) {
	if operatorID < 1 {
		return nil, apperrors.InvalidAttributes("invalid operator ID: %d", operatorID)
	}
	orders, err := s.repo.GetOrdersAssignedToOperator(ctx, operatorID)
	if err != nil {
		return nil, apperrors.Internal("failed to load operator orders: %v", err)
	}
	return orders, nil
}

func (s *OperatorService) AssignOrdersToOperator(ctx context.Context, orderIDs []int64, operatorID int64) error {
	if operatorID < 1 {
		return apperrors.InvalidAttributes("invalid operator ID: %d", operatorID)
	}
	if len(orderIDs) == 0 {
		return apperrors.InvalidAttributes("no order IDs provided")
	}
	for _, id := range orderIDs {
		if id < 1 {
			return apperrors.InvalidAttributes("invalid order ID: %d", id)
		}
	}

	if err := s.repo.AssignOrdersToOperator(ctx, orderIDs, operatorID); err != nil {
		return apperrors.Internal("failed to assign orders: %v", err)
	}

	s.logger.WithFields(logrus.Fields{
		"operator_id": operatorID,
		"orders":      len(orderIDs),
	}).Info("Orders assigned to operator")

	s.publish(ctx, models.NewOrdersAssignedEvent(operatorID, orderIDs))
	return nil
}

// RemoveOrdersFromOperator detaches orders from an operator. A nil slice
// removes every order the operator holds.
func (s *OperatorService) RemoveOrdersFromOperator(ctx context.Context, operatorID int64, orderIDs []int64) error {
	if operatorID < 1 {
		return apperrors.InvalidAttributes("invalid operator ID: %d", operatorID)
	}
	if orderIDs != nil && len(orderIDs) == 0 {
		return apperrors.InvalidAttributes("no order IDs provided")
	}

	if err := s.repo.RemoveOrdersFromOperator(ctx, operatorID, orderIDs); err != nil {
		return apperrors.Internal("failed to remove orders: %v", err)
	}

	s.publish(ctx, models.NewOrdersUnassignedEvent(operatorID, orderIDs))
	return nil
}

// Redistribute moves the given orders away from an operator onto the
// remaining operators, filling spare capacity in ascending operator ID order.
// A nil orderIDs slice redistributes everything the operator currently holds.
// If the remaining operators cannot absorb every order under the limit, no
// assignment is written at all.
func (s *OperatorService) Redistribute(ctx context.Context, operatorID int64, orderIDs []int64) error {
	if operatorID < 1 {
		return apperrors.InvalidAttributes("invalid operator ID: %d", operatorID)
	}

	if orderIDs == nil {
		orders, err := s.repo.GetOrdersAssignedToOperator(ctx, operatorID)
		if err != nil {
			return apperrors.Internal("failed to load operator orders: %v", err)
		}
		for _, order := range orders {
			orderIDs = append(orderIDs, order.ID)
		}
	}
	if len(orderIDs) == 0 {
		return nil
	}

	counts, err := s.repo.OrderCountsByOperator(ctx)
	if err != nil {
		return apperrors.Internal("failed to load operator order counts: %v", err)
	}

	plan, remaining := buildPlan(orderIDs, counts, operatorID, s.orderLimit)
	if len(remaining) > 0 {
		return apperrors.NotAllowed("can not redistribute orders, %d orders exceed the remaining operator capacity", len(remaining))
	}

	if err := s.repo.ReassignOrders(ctx, operatorID, plan); err != nil {
		return apperrors.Internal("failed to reassign orders: %v", err)
	}

	s.logger.WithFields(logrus.Fields{
		"from_operator": operatorID,
		"orders":        len(plan),
	}).Info("Orders redistributed successfully")

	s.publish(ctx, models.NewOrdersReassignedEvent(operatorID, plan))
	return nil
}

// DispatchAvailableOrders assigns currently unassigned orders to operators
// with spare capacity. Orders that do not fit stay unassigned for the next
// run; a partial fill is not an error. Returns the number of orders assigned.
func (s *OperatorService) DispatchAvailableOrders(ctx context.Context) (int, error) {
	orders, err := s.repo.GetAvailableOrders(ctx)
	if err != nil {
		return 0, apperrors.Internal("failed to load available orders: %v", err)
	}
	if len(orders) == 0 {
		return 0, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	counts, err := s.repo.OrderCountsByOperator(ctx)
	if err != nil {
		return 0, apperrors.Internal("failed to load operator order counts: %v", err)
	}

	plan, remaining := buildPlan(orderIDs, counts, 0, s.orderLimit)
	if len(plan) == 0 {
		s.logger.WithField("unassigned", len(remaining)).Warn("No operator capacity for available orders")
		return 0, nil
	}

	byOperator := make(map[int64][]int64)
	for orderID, opID := range plan {
		byOperator[opID] = append(byOperator[opID], orderID)
	}

	assigned := 0
	for opID, ids := range byOperator {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		if err := s.repo.AssignOrdersToOperator(ctx, ids, opID); err != nil {
			s.logger.WithError(err).WithField("operator_id", opID).Error("Failed to dispatch orders to operator")
			continue
		}
		assigned += len(ids)
		s.publish(ctx, models.NewOrdersDispatchedEvent(opID, ids))
	}

	s.logger.WithFields(logrus.Fields{
		"assigned":  assigned,
		"remaining": len(remaining),
	}).Info("Available orders dispatched")

	return assigned, nil
}

// buildPlan greedily fills each operator's spare capacity in ascending
// operator ID order, skipping skipOperatorID. It returns the order-to-operator
// plan and the orders that did not fit.
func buildPlan(orderIDs []int64, counts []models.OperatorOrderCount, skipOperatorID int64, limit int) (map[int64]int64, []int64) {
	targets := make([]models.OperatorOrderCount, 0, len(counts))
	for _, count := range counts {
		if count.OperatorID == skipOperatorID {
			continue
		}
		targets = append(targets, count)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].OperatorID < targets[j].OperatorID })

	plan := make(map[int64]int64, len(orderIDs))
	next := 0
	for _, target := range targets {
		spare := limit - target.OrdersTaken
		for spare > 0 && next < len(orderIDs) {
			plan[orderIDs[next]] = target.OperatorID
			next++
			spare--
		}
		if next == len(orderIDs) {
			break
		}
	}

	return plan, orderIDs[next:]
}

func (s *OperatorService) publish(ctx context.Context, event *models.Event) {
	if err := s.producer.PublishEvent(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
		}).Error("Failed to publish event")
	}
}
