package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"retail-order-service/internal/apperrors"
	"retail-order-service/internal/models"
	"retail-order-service/internal/repository"
)

// HistoryService serves the append-only history chain kept per order number.
type HistoryService struct {
	history repository.HistoryRepository
	logger  *logrus.Entry
}

func NewHistoryService(history repository.HistoryRepository) *HistoryService {
	return &HistoryService{
		history: history,
		logger:  logrus.WithField("component", "history_service"),
	}
}

// GetHistoryForOrder returns the full chain for an order number, oldest node
// first. Deleted orders keep their chain, so history survives the order row.
func (s *HistoryService) GetHistoryForOrder(ctx context.Context, orderNumber int64) ([]models.OrderHistoryElement, error) {
	if orderNumber < 1 {
		return nil, apperrors.InvalidAttributes("invalid order number: %d", orderNumber)
	}
	return s.history.GetHistoryForOrder(ctx, orderNumber)
}

// ReplayOrderStates walks the chain for an order number, verifies every node
// links to its predecessor, and decodes the order snapshots newest first.
// A broken link means the store was tampered with or corrupted.
func (s *HistoryService) ReplayOrderStates(ctx context.Context, orderNumber int64) ([]*models.Order, error) {
	elements, err := s.GetHistoryForOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return []*models.Order{}, nil
	}

	if elements[0].PreviousRecord != nil {
		return nil, apperrors.Internal("broken history chain for order %d: first node links to record %d", orderNumber, *elements[0].PreviousRecord)
	}
	for i := 1; i < len(elements); i++ {
		prev := elements[i].PreviousRecord
		if prev == nil || *prev != elements[i-1].ID {
			return nil, apperrors.Internal("broken history chain for order %d at record %d", orderNumber, elements[i].ID)
		}
	}

	states := make([]*models.Order, 0, len(elements))
	for i := len(elements) - 1; i >= 0; i-- {
		order, err := elements[i].DecodeState()
		if err != nil {
			return nil, apperrors.Internal("failed to decode history state for order %d: %v", orderNumber, err)
		}
		states = append(states, order)
	}

	return states, nil
}
