package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

type OrderService struct {
	orderRepo      ports.OrderRepository
	assessmentRepo ports.AssessmentRepository
	logger         zerolog.Logger
}

func NewOrderService(orderRepo ports.OrderRepository, assessmentRepo ports.AssessmentRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, assessmentRepo: assessmentRepo, logger: logger}
}

// CreateOrder places a new assessment order and queues its assessment. If an
// idempotency key is provided and already seen, the previously created order
// is returned without side effects.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.orderRepo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("order_number", existing.OrderNumber).Msg("idempotent replay")
			return &ports.OrderResult{
				OrderNumber:         existing.OrderNumber,
				Status:              string(existing.Status),
				CreatedAt:           existing.CreatedAt,
				EstimatedCompletion: existing.EstimatedCompletion,
				AlreadyExisted:      true,
			}, nil
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderNumber:         generateOrderNumber(),
		CustomerID:          input.CustomerID,
		ServiceLevel:        input.ServiceLevel,
		Status:              domain.OrderPending,
		CreatedAt:           now,
		EstimatedCompletion: estimatedCompletion(input.ServiceLevel, now),
		IdempotencyKey:      input.IdempotencyKey,
		StatusHistory: []domain.OrderHistoryEntry{
			{Status: domain.OrderPending, Timestamp: now},
		},
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, domain.OrderItem{
			GemType:     item.GemType,
			CaratWeight: item.CaratWeight,
			Notes:       item.Notes,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	assessment := &domain.Assessment{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      domain.AssessmentQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
		StatusHistory: []domain.AssessmentHistoryEntry{
			{Status: domain.AssessmentQueued, Timestamp: now},
		},
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		// the order stands on its own; the assessment can be requeued
		s.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to queue assessment")
	}

	s.logger.Info().Str("order_number", order.OrderNumber).Str("customer_id", input.CustomerID).Msg("order created")

	return &ports.OrderResult{
		OrderNumber:         order.OrderNumber,
		Status:              string(order.Status),
		CreatedAt:           order.CreatedAt,
		EstimatedCompletion: order.EstimatedCompletion,
	}, nil
}

// GetOrder returns one order. Customers are restricted to their own orders;
// staff roles see everything.
func (s *OrderService) GetOrder(ctx context.Context, access ports.OrderAccess) (*domain.Order, error) {
	customerID, err := scopeCustomer(access)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByOrderNumber(ctx, access.OrderNumber, customerID)
}

// ListOrders pages through orders visible to the caller.
func (s *OrderService) ListOrders(ctx context.Context, input ports.ListOrdersInput) ([]domain.Order, int64, error) {
	filter := ports.ListOrdersFilter{
		Status: input.Status,
		Page:   input.Page,
		Limit:  input.Limit,
	}
	if !input.Role.IsStaff() {
		if input.CustomerID == "" {
			return nil, 0, domain.ErrForbidden
		}
		filter.CustomerID = input.CustomerID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.orderRepo.List(ctx, filter)
}

// CancelOrder cancels an order if its state machine still allows it.
func (s *OrderService) CancelOrder(ctx context.Context, access ports.OrderAccess) error {
	customerID, err := scopeCustomer(access)
	if err != nil {
		return err
	}

	order, err := s.orderRepo.FindByOrderNumber(ctx, access.OrderNumber, customerID)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(domain.OrderCancelled) {
		return fmt.Errorf("cancel order: %w (from %s)", domain.ErrInvalidTransition, order.Status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.OrderNumber, domain.OrderCancelled, time.Now().UTC(), "cancelled by "+access.CustomerID); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	s.logger.Info().Str("order_number", order.OrderNumber).Msg("order cancelled")
	return nil
}

// scopeCustomer returns the customer filter for the caller: customers are
// pinned to their own ID, staff get an empty (unrestricted) filter.
func scopeCustomer(access ports.OrderAccess) (string, error) {
	if access.Role.IsStaff() {
		return "", nil
	}
	if access.CustomerID == "" {
		return "", domain.ErrForbidden
	}
	return access.CustomerID, nil
}

// generateOrderNumber returns a unique order number in the format GEM-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("GEM-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("GEM-%08X", b)
}

// estimatedCompletion calculates the promised turnaround per service level.
func estimatedCompletion(serviceLevel string, from time.Time) time.Time {
	base := time.Date(from.Year(), from.Month(), from.Day(), 18, 0, 0, 0, time.UTC)
	switch serviceLevel {
	case "express":
		return base.AddDate(0, 0, 2)
	case "priority":
		return base.AddDate(0, 0, 5)
	default: // "standard" or unknown → 10 business-ish days
		return base.AddDate(0, 0, 10)
	}
}
