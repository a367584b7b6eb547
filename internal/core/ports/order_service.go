package ports

import (
	"context"
	"time"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// OrderItemInput describes a single stone submitted for assessment.
type OrderItemInput struct {
	GemType     string
	CaratWeight float64
	Notes       string
}

// CreateOrderInput carries all data needed to place a new assessment order.
type CreateOrderInput struct {
	Items          []OrderItemInput
	ServiceLevel   string
	CustomerID     string
	IdempotencyKey string
}

// OrderResult is returned by the service after placing an order.
type OrderResult struct {
	OrderNumber         string
	Status              string
	CreatedAt           time.Time
	EstimatedCompletion time.Time
	AlreadyExisted      bool
}

// OrderAccess identifies the caller for per-order authorization.
type OrderAccess struct {
	OrderNumber string
	Role        domain.Role
	CustomerID  string
}

// ListOrdersInput pages and filters the order list for a given caller.
type ListOrdersInput struct {
	Role       domain.Role
	CustomerID string
	Status     string
	Page       int
	Limit      int
}

// OrderService exposes the customer-facing order operations.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResult, error)
	GetOrder(ctx context.Context, access OrderAccess) (*domain.Order, error)
	ListOrders(ctx context.Context, input ListOrdersInput) ([]domain.Order, int64, error)
	CancelOrder(ctx context.Context, access OrderAccess) error
}
