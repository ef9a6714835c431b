package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"retail-order-service/internal/models"
)

func TestBuildCriteriaQuery(t *testing.T) {
	t.Run("empty criteria selects everything ordered by number", func(t *testing.T) {
		query, args, err := buildCriteriaQuery(models.OrderCriteria{})

		assert.NoError(t, err)
		assert.Empty(t, args)
		assert.Contains(t, query, "FROM orders")
		assert.Contains(t, query, "ORDER BY order_number ASC")
		assert.NotContains(t, query, "WHERE")
	})

	t.Run("product filter uses assignment subquery", func(t *testing.T) {
		query, args, err := buildCriteriaQuery(models.OrderCriteria{ProductIDs: []int64{1, 2}})

		assert.NoError(t, err)
		assert.Len(t, args, 1)
		assert.Contains(t, query, "id IN (SELECT order_id FROM order_products WHERE product_id = ANY($1))")
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		paid := true
		bottom := 10.0
		top := 200.0
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		query, args, err := buildCriteriaQuery(models.OrderCriteria{
			OrderNumbers:      []int64{100000001, 100000002},
			Statuses:          []models.OrderStatus{models.OrderStatusPaid, models.OrderStatusSent},
			BookingTimeBottom: &from,
			Paid:              &paid,
			CostBottom:        &bottom,
			CostTop:           &top,
		})

		assert.NoError(t, err)
		assert.Len(t, args, 8)
		assert.Contains(t, query, "order_number IN ($1,$2)")
		assert.Contains(t, query, "status IN ($3,$4)")
		assert.Contains(t, query, "booking_time >= $5")
		assert.Contains(t, query, "paid = $6")
		assert.Contains(t, query, "product_cost >= $7")
		assert.Contains(t, query, "product_cost <= $8")
	})
}
