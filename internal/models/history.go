package models

import (
	"encoding/json"
	"time"
)

type OrderHistoryEvent string

const (
	OrderHistoryCreated OrderHistoryEvent = "ORDER_CREATED"
	OrderHistoryUpdated OrderHistoryEvent = "ORDER_UPDATED"
	OrderHistoryDeleted OrderHistoryEvent = "ORDER_DELETED"
)

func (e OrderHistoryEvent) IsValid() bool {
	switch e {
	case OrderHistoryCreated, OrderHistoryUpdated, OrderHistoryDeleted:
		return true
	}
	return false
}

// OrderHistoryElement is one node of the append-only history chain kept per
// order number. State holds the full JSON snapshot of the order as it looked
// right after the triggering event; PreviousRecord links to the immediately
// prior node, nil for the creation node. Nodes are never updated or deleted.
type OrderHistoryElement struct {
	ID             int64             `json:"id" db:"id"`
	OrderNumber    int64             `json:"order_number" db:"order_number"`
	State          json.RawMessage   `json:"state" db:"state"`
	Event          OrderHistoryEvent `json:"event" db:"event"`
	PreviousRecord *int64            `json:"previous_record" db:"previous_record"`
	Date           time.Time         `json:"date" db:"recorded_at"`
}

// DecodeState unpacks the order snapshot carried by the node.
func (e *OrderHistoryElement) DecodeState() (*Order, error) {
	var order Order
	if err := json.Unmarshal(e.State, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
