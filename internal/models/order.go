package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type OrderStatus string

const (
	OrderStatusPaymentWaiting OrderStatus = "PAYMENT_WAITING"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusSent           OrderStatus = "SENT"
	OrderStatusOnRoad         OrderStatus = "ON_ROAD"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusReceived       OrderStatus = "RECEIVED"
	OrderStatusReturned       OrderStatus = "RETURNED"
	OrderStatusNotDelivered   OrderStatus = "NOT_DELIVERED"
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusInitiated      OrderStatus = "INITIATED"
)

// BaselineOrderNumber is reported by the store when no orders exist yet;
// the first real order gets BaselineOrderNumber+1.
const BaselineOrderNumber int64 = 100000000

var validate = validator.New()

func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPaymentWaiting,
		OrderStatusPaid,
		OrderStatusSent,
		OrderStatusOnRoad,
		OrderStatusDelivered,
		OrderStatusReceived,
		OrderStatusReturned,
		OrderStatusNotDelivered,
		OrderStatusPending,
		OrderStatusCancelled,
		OrderStatusInitiated,
	}
}

// FinalOrderStatuses lists the terminal states: no further transitions are
// expected once an order reaches one of them.
func FinalOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusReceived,
		OrderStatusReturned,
		OrderStatusNotDelivered,
		OrderStatusCancelled,
	}
}

func (s OrderStatus) IsValid() bool {
	for _, status := range AllOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsFinal() bool {
	for _, status := range FinalOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID              int64       `json:"id" db:"id"`
	CustomerID      int64       `json:"customer_id" db:"customer_id" validate:"required,min=1"`
	OrderNumber     int64       `json:"order_number" db:"order_number"`
	BookingTime     time.Time   `json:"booking_time" db:"booking_time"`
	DeliveryAddress string      `json:"delivery_address" db:"delivery_address"`
	Products        []Product   `json:"products" validate:"required,min=1"`
	DeliveryCost    float64     `json:"delivery_cost" db:"delivery_cost" validate:"gte=0"`
	ProductCost     float64     `json:"product_cost" db:"product_cost" validate:"gte=0"`
	Paid            bool        `json:"paid" db:"paid"`
	Status          OrderStatus `json:"status" db:"status"`
}

// Validate checks the invariants required before an order may be persisted.
func (o *Order) Validate() error {
	if err := validate.Struct(o); err != nil {
		return err
	}
	for _, product := range o.Products {
		if product.ID < 1 {
			return fmt.Errorf("invalid product ID: %d", product.ID)
		}
	}
	if !o.Status.IsValid() {
		return fmt.Errorf("invalid order status: %q", o.Status)
	}
	return nil
}

func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Products))
	for _, product := range o.Products {
		ids = append(ids, product.ID)
	}
	return ids
}

// CalculateProductCost sums the unit prices of the referenced products.
// The result is frozen into the order at creation time.
func (o *Order) CalculateProductCost() {
	cost := 0.0
	for _, product := range o.Products {
		cost += product.Price
	}
	o.ProductCost = cost
}

type CreateOrderRequest struct {
	CustomerID      int64   `json:"customer_id" binding:"required,min=1"`
	DeliveryAddress string  `json:"delivery_address"`
	DeliveryCost    float64 `json:"delivery_cost" binding:"gte=0"`
	ProductIDs      []int64 `json:"product_ids" binding:"required,min=1"`
}

// DeliveryDetailsUpdate carries the optional delivery fields of an order
// update; a nil field means "leave unchanged".
type DeliveryDetailsUpdate struct {
	DeliveryAddress *string  `json:"delivery_address"`
	DeliveryCost    *float64 `json:"delivery_cost"`
}

func (u *DeliveryDetailsUpdate) Validate() error {
	if u.DeliveryAddress == nil && u.DeliveryCost == nil {
		return fmt.Errorf("no delivery details provided")
	}
	if u.DeliveryAddress != nil && *u.DeliveryAddress == "" {
		return fmt.Errorf("delivery address must not be empty")
	}
	if u.DeliveryCost != nil && *u.DeliveryCost < 0 {
		return fmt.Errorf("invalid delivery cost: %f", *u.DeliveryCost)
	}
	return nil
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
