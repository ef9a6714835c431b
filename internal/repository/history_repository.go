package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"retail-order-service/internal/models"
)

// PostgresHistoryRepository persists the append-only order history chain.
// Every mutation of an order appends exactly one node; nodes are never
// updated or deleted, so the chain survives order deletion.
type PostgresHistoryRepository struct {
	db     *sql.DB
	logger *logrus.Entry
}

func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{
		db:     db,
		logger: logrus.WithField("component", "history_repository"),
	}
}

// GetHistoryForOrder returns the chain for an order number, oldest first.
// Read failures degrade to an empty chain instead of propagating.
func (r *PostgresHistoryRepository) GetHistoryForOrder(ctx context.Context, orderNumber int64) ([]models.OrderHistoryElement, error) {
	query := `
		SELECT id, order_number, state, event, previous_record, recorded_at
		FROM order_history
		WHERE order_number = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderNumber)
	if err != nil {
		r.logger.WithError(err).WithField("order_number", orderNumber).Error("Failed to read order history")
		return []models.OrderHistoryElement{}, nil
	}
	defer rows.Close()

	elements := make([]models.OrderHistoryElement, 0)
	for rows.Next() {
		var element models.OrderHistoryElement
		err := rows.Scan(&element.ID, &element.OrderNumber, &element.State,
			&element.Event, &element.PreviousRecord, &element.Date)
		if err != nil {
			r.logger.WithError(err).WithField("order_number", orderNumber).Error("Failed to scan history element")
			return []models.OrderHistoryElement{}, nil
		}
		elements = append(elements, element)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithError(err).WithField("order_number", orderNumber).Error("Failed to iterate order history")
		return []models.OrderHistoryElement{}, nil
	}

	return elements, nil
}

// appendNode inserts a history node carrying the full order snapshot,
// linked to the latest existing node for the same order number. It runs on
// the caller's transaction so that a failed append aborts the whole
// mutation.
func (r *PostgresHistoryRepository) appendNode(ctx context.Context, tx *sql.Tx, order *models.Order, event models.OrderHistoryEvent) error {
	if !event.IsValid() {
		return fmt.Errorf("invalid history event: %q", event)
	}

	snapshot, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order snapshot: %w", err)
	}

	query := `
		INSERT INTO order_history (order_number, state, event, previous_record, recorded_at)
		VALUES ($1, $2, $3, (SELECT MAX(id) FROM order_history WHERE order_number = $1), $4)
	`

	if _, err := tx.ExecContext(ctx, query, order.OrderNumber, snapshot, event, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to append history node: %w", err)
	}

	return nil
}
