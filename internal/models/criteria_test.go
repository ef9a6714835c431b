package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderCriteria_Validate(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)
	low := 10.0
	high := 100.0
	negative := -5.0

	tests := []struct {
		name     string
		criteria OrderCriteria
		wantErr  bool
	}{
		{name: "empty criteria"},
		{name: "valid filters", criteria: OrderCriteria{
			ProductIDs:        []int64{1, 2},
			Statuses:          []OrderStatus{OrderStatusPaid},
			BookingTimeBottom: &earlier,
			BookingTimeTop:    &now,
			CostBottom:        &low,
			CostTop:           &high,
		}},
		{name: "invalid product ID", criteria: OrderCriteria{ProductIDs: []int64{0}}, wantErr: true},
		{name: "invalid order number", criteria: OrderCriteria{OrderNumbers: []int64{-1}}, wantErr: true},
		{name: "unknown status", criteria: OrderCriteria{Statuses: []OrderStatus{"SHIPPED"}}, wantErr: true},
		{name: "inverted time range", criteria: OrderCriteria{BookingTimeBottom: &now, BookingTimeTop: &earlier}, wantErr: true},
		{name: "inverted cost range", criteria: OrderCriteria{CostBottom: &high, CostTop: &low}, wantErr: true},
		{name: "negative cost bound", criteria: OrderCriteria{CostBottom: &negative}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderCriteria_IsEmpty(t *testing.T) {
	assert.True(t, OrderCriteria{}.IsEmpty())

	paid := true
	assert.False(t, OrderCriteria{Paid: &paid}.IsEmpty())
	assert.False(t, OrderCriteria{ProductIDs: []int64{1}}.IsEmpty())
}
