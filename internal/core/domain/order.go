package domain

import "time"

// OrderStatus represents the lifecycle state of an assessment order.
type OrderStatus string

const (
	OrderPending      OrderStatus = "pending"
	OrderReceived     OrderStatus = "received"
	OrderInAssessment OrderStatus = "in_assessment"
	OrderCompleted    OrderStatus = "completed"
	OrderCancelled    OrderStatus = "cancelled"
)

// validOrderTransitions defines the allowed state machine transitions.
// Orders are cancellable until the stones are on an assessor's bench.
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:      {OrderReceived, OrderCancelled},
	OrderReceived:     {OrderInAssessment, OrderCancelled},
	OrderInAssessment: {OrderCompleted},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem describes a single stone submitted for assessment.
type OrderItem struct {
	GemType     string  `json:"gem_type" bson:"gem_type"`
	CaratWeight float64 `json:"carat_weight" bson:"carat_weight"`
	Notes       string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// OrderHistoryEntry records a single status transition on an order.
type OrderHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	Notes     string      `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order is an assessment request placed by a customer.
type Order struct {
	ID                  string              `json:"id" bson:"_id,omitempty"`
	OrderNumber         string              `json:"order_number" bson:"order_number"`
	CustomerID          string              `json:"customer_id" bson:"customer_id"`
	Items               []OrderItem         `json:"items" bson:"items"`
	ServiceLevel        string              `json:"service_level" bson:"service_level"`
	Status              OrderStatus         `json:"status" bson:"status"`
	CreatedAt           time.Time           `json:"created_at" bson:"created_at"`
	EstimatedCompletion time.Time           `json:"estimated_completion" bson:"estimated_completion"`
	IdempotencyKey      string              `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	StatusHistory       []OrderHistoryEntry `json:"status_history" bson:"status_history"`
}
