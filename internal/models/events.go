package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	OrderCreatedEvent     EventType = "order.created"
	OrderUpdatedEvent     EventType = "order.updated"
	OrderDeletedEvent     EventType = "order.deleted"
	ProductCreatedEvent   EventType = "product.created"
	ProductUpdatedEvent   EventType = "product.updated"
	ProductDeletedEvent   EventType = "product.deleted"
	OrdersAssignedEvent   EventType = "operator.orders.assigned"
	OrdersUnassignedEvent EventType = "operator.orders.unassigned"
	OrdersReassignedEvent EventType = "operator.orders.reassigned"
	OrdersDispatchedEvent EventType = "operator.orders.dispatched"
)

// Notification destinations the dispatcher fans events out to.
const (
	DestinationOrders    = "order-notifications"
	DestinationProducts  = "product-notifications"
	DestinationOperators = "operator-notifications"
)

// Event is the outbound notification emitted after a successful mutation.
// Delivery is fire-and-forget: a publish failure never rolls the mutation
// back.
type Event struct {
	ID          uuid.UUID   `json:"id"`
	Type        EventType   `json:"type"`
	Destination string      `json:"destination"`
	Data        interface{} `json:"data"`
	Timestamp   time.Time   `json:"timestamp"`
	Version     string      `json:"version"`
}

func NewEvent(eventType EventType, destination string, data interface{}) *Event {
	return &Event{
		ID:          uuid.New(),
		Type:        eventType,
		Destination: destination,
		Data:        data,
		Timestamp:   time.Now().UTC(),
		Version:     "1.0",
	}
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Event) FromJSON(data []byte) error {
	return json.Unmarshal(data, e)
}

func NewOrderCreatedEvent(order *Order) *Event {
	return NewEvent(OrderCreatedEvent, DestinationOrders, order)
}

func NewOrderUpdatedEvent(order *Order) *Event {
	return NewEvent(OrderUpdatedEvent, DestinationOrders, order)
}

func NewOrderDeletedEvent(order *Order) *Event {
	return NewEvent(OrderDeletedEvent, DestinationOrders, order)
}

func NewProductEvent(eventType EventType, product *Product) *Event {
	return NewEvent(eventType, DestinationProducts, product)
}

type OrdersReassignedEventData struct {
	FromOperatorID int64           `json:"from_operator_id"`
	Assignments    map[int64]int64 `json:"assignments"`
	ReassignedAt   time.Time       `json:"reassigned_at"`
}

func NewOrdersReassignedEvent(fromOperatorID int64, assignments map[int64]int64) *Event {
	data := OrdersReassignedEventData{
		FromOperatorID: fromOperatorID,
		Assignments:    assignments,
		ReassignedAt:   time.Now().UTC(),
	}
	return NewEvent(OrdersReassignedEvent, DestinationOperators, data)
}

type OrdersAssignedEventData struct {
	OperatorID int64     `json:"operator_id"`
	OrderIDs   []int64   `json:"order_ids"`
	AssignedAt time.Time `json:"assigned_at"`
}

func NewOrdersAssignedEvent(operatorID int64, orderIDs []int64) *Event {
	data := OrdersAssignedEventData{
		OperatorID: operatorID,
		OrderIDs:   orderIDs,
		AssignedAt: time.Now().UTC(),
	}
	return NewEvent(OrdersAssignedEvent, DestinationOperators, data)
}

func NewOrdersDispatchedEvent(operatorID int64, orderIDs []int64) *Event {
	data := OrdersAssignedEventData{
		OperatorID: operatorID,
		OrderIDs:   orderIDs,
		AssignedAt: time.Now().UTC(),
	}
	return NewEvent(OrdersDispatchedEvent, DestinationOperators, data)
}

type OrdersUnassignedEventData struct {
	OperatorID   int64     `json:"operator_id"`
	OrderIDs     []int64   `json:"order_ids,omitempty"`
	UnassignedAt time.Time `json:"unassigned_at"`
}

func NewOrdersUnassignedEvent(operatorID int64, orderIDs []int64) *Event {
	data := OrdersUnassignedEventData{
		OperatorID:   operatorID,
		OrderIDs:     orderIDs,
		UnassignedAt: time.Now().UTC(),
	}
	return NewEvent(OrdersUnassignedEvent, DestinationOperators, data)
}
