package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderHistoryEvent_IsValid(t *testing.T) {
	assert.True(t, OrderHistoryCreated.IsValid())
	assert.True(t, OrderHistoryUpdated.IsValid())
	assert.True(t, OrderHistoryDeleted.IsValid())
	assert.False(t, OrderHistoryEvent("ORDER_ARCHIVED").IsValid())
}

func TestOrderHistoryElement_DecodeState(t *testing.T) {
	order := Order{ID: 1, OrderNumber: 100000001, Status: OrderStatusPaid, Paid: true}
	state, err := json.Marshal(order)
	assert.NoError(t, err)

	element := OrderHistoryElement{
		ID:          1,
		OrderNumber: order.OrderNumber,
		State:       state,
		Event:       OrderHistoryUpdated,
	}

	decoded, err := element.DecodeState()

	assert.NoError(t, err)
	assert.Equal(t, order.OrderNumber, decoded.OrderNumber)
	assert.Equal(t, OrderStatusPaid, decoded.Status)
	assert.True(t, decoded.Paid)
}

func TestOrderHistoryElement_DecodeState_Corrupt(t *testing.T) {
	element := OrderHistoryElement{State: json.RawMessage(`{"id":`)}

	decoded, err := element.DecodeState()

	assert.Error(t, err)
	assert.Nil(t, decoded)
}
