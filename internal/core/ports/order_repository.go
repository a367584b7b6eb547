package ports

import (
	"context"
	"time"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// ListOrdersFilter narrows and pages order listings.
type ListOrdersFilter struct {
	CustomerID string // empty = all customers
	Status     string // empty = all statuses
	Page       int
	Limit      int
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// FindByOrderNumber returns the order, restricted to customerID when
	// non-empty (customers may only see their own orders).
	FindByOrderNumber(ctx context.Context, orderNumber, customerID string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]domain.Order, int64, error)
	// UpdateStatus atomically applies a status change and appends it to the
	// order's history.
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, ts time.Time, notes string) error
}
