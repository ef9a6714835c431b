package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderCriteria composes an arbitrary set of optional order filters.
// Nil or empty fields are skipped; range bounds must be internally
// consistent (bottom <= top, costs non-negative).
type OrderCriteria struct {
	ProductIDs        []int64
	OrderNumbers      []int64
	Statuses          []OrderStatus
	BookingTimeBottom *time.Time
	BookingTimeTop    *time.Time
	Paid              *bool
	CostBottom        *float64
	CostTop           *float64
}

func (c OrderCriteria) Validate() error {
	var problems []string
	for _, id := range c.ProductIDs {
		if id < 1 {
			problems = append(problems, fmt.Sprintf("invalid product IDs: %v", c.ProductIDs))
			break
		}
	}
	for _, number := range c.OrderNumbers {
		if number < 1 {
			problems = append(problems, fmt.Sprintf("invalid order numbers: %v", c.OrderNumbers))
			break
		}
	}
	for _, status := range c.Statuses {
		if !status.IsValid() {
			problems = append(problems, fmt.Sprintf("invalid order statuses: %v", c.Statuses))
			break
		}
	}
	if c.BookingTimeBottom != nil && c.BookingTimeTop != nil && c.BookingTimeBottom.After(*c.BookingTimeTop) {
		problems = append(problems, fmt.Sprintf("invalid booking time range, top: %s, bottom: %s", c.BookingTimeTop, c.BookingTimeBottom))
	}
	if c.CostBottom != nil && c.CostTop != nil && *c.CostBottom > *c.CostTop ||
		c.CostBottom != nil && *c.CostBottom < 0 ||
		c.CostTop != nil && *c.CostTop < 0 {
		problems = append(problems, fmt.Sprintf("invalid cost range, top: %v, bottom: %v", c.CostTop, c.CostBottom))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func (c OrderCriteria) IsEmpty() bool {
	return len(c.ProductIDs) == 0 && len(c.OrderNumbers) == 0 && len(c.Statuses) == 0 &&
		c.BookingTimeBottom == nil && c.BookingTimeTop == nil &&
		c.Paid == nil && c.CostBottom == nil && c.CostTop == nil
}
