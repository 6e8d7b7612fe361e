package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Known order statuses. Status is stored as a free-form string; these are
// the values the mobile client produces.
const (
	StatusPending               = "PENDING"
	StatusConfirmed             = "CONFIRMED"
	StatusPreparingOrder        = "PREPARING_ORDER"
	StatusReadyForPickup        = "READY_FOR_PICKUP"
	StatusOnWay                 = "ON_WAY"
	StatusOutForDelivery        = "OUT_FOR_DELIVERY"
	StatusDelivered             = "DELIVERED"
	StatusDeliveryAttemptFailed = "DELIVERY_ATTEMPT_FAILED"
	StatusCompleted             = "COMPLETED"
	StatusCancelled             = "CANCELLED"
	StatusReturned              = "RETURNED"

	// StatusUnknown buckets orders stored without a status in analytics.
	StatusUnknown = "UNKNOWN"
)

type Order struct {
	ID               string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           string     `bson:"userId" json:"userId"`
	OrderID          string     `bson:"orderId" json:"orderId"`
	Items            []LineItem `bson:"items" json:"items"`
	TotalAmount      float64    `bson:"totalAmount" json:"totalAmount"`
	DeliveryLocation *Location  `bson:"deliveryLocation" json:"deliveryLocation"`
	Status           string     `bson:"status,omitempty" json:"status,omitempty"`
	// Timestamp is assigned by the store when the order is written.
	Timestamp *time.Time `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	// CreatedAt is computed by the gateway (ISO-8601) at creation.
	CreatedAt string     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// LineItem is an arbitrary client record, typically a nested "product"
// description plus a "quantity".
type LineItem = bson.M

type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type CreateOrderRequest struct {
	UserID           string     `json:"userId"`
	OrderID          string     `json:"orderId"`
	Items            []LineItem `json:"items"`
	TotalAmount      *float64   `json:"totalAmount"`
	DeliveryLocation *Location  `json:"deliveryLocation"`
	Status           string     `json:"status"`
}

func (r *CreateOrderRequest) Validate() error {
	if r.UserID == "" {
		return &MissingFieldError{Field: "userId"}
	}
	if r.OrderID == "" {
		return &MissingFieldError{Field: "orderId"}
	}
	return nil
}

// Order applies the create defaults: no items, a zero total and PENDING.
func (r *CreateOrderRequest) Order(now time.Time) *Order {
	order := &Order{
		UserID:           r.UserID,
		OrderID:          r.OrderID,
		Items:            r.Items,
		DeliveryLocation: r.DeliveryLocation,
		Status:           r.Status,
		CreatedAt:        now.UTC().Format(time.RFC3339Nano),
	}
	if order.Items == nil {
		order.Items = []LineItem{}
	}
	if r.TotalAmount != nil {
		order.TotalAmount = *r.TotalAmount
	}
	if order.Status == "" {
		order.Status = StatusPending
	}
	return order
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateOrderStatusRequest) Validate() error {
	if r.Status == "" {
		return &MissingFieldError{Field: "status"}
	}
	return nil
}
