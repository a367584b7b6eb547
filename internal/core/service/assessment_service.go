package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, orderNumber, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, orderNumber, status string, ts time.Time) error
}

type assessmentService struct {
	assessmentRepo ports.AssessmentRepository
	orderRepo      ports.OrderRepository
	dedup          DedupChecker
	log            zerolog.Logger
}

// NewAssessmentService returns an AssessmentService implementation.
func NewAssessmentService(
	assessmentRepo ports.AssessmentRepository,
	orderRepo ports.OrderRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		orderRepo:      orderRepo,
		dedup:          dedup,
		log:            log,
	}
}

// Process validates, deduplicates, and applies a single workflow event.
func (s *assessmentService) Process(ctx context.Context, in ports.AssessmentEventInput) error {
	newStatus := domain.AssessmentStatus(in.Status)

	// 1. Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.OrderNumber, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("order", in.OrderNumber).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("order", in.OrderNumber).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	assessment, err := s.assessmentRepo.FindByOrderNumber(ctx, in.OrderNumber)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	// 2. Validate workflow transition.
	if !assessment.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, assessment.Status, newStatus)
	}

	// 3. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.OrderNumber, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("order", in.OrderNumber).Msg("failed to set dedup key")
	}

	var grades *domain.Grades
	if in.Grades != nil {
		grades = &domain.Grades{
			Cut:         in.Grades.Cut,
			Color:       in.Grades.Color,
			Clarity:     in.Grades.Clarity,
			CaratWeight: in.Grades.CaratWeight,
		}
	}

	// 4. Atomically update status + history (+ assessor/grades when present).
	if err := s.assessmentRepo.ApplyTransition(ctx, ports.ApplyTransitionInput{
		OrderNumber: in.OrderNumber,
		Status:      newStatus,
		Timestamp:   in.Timestamp,
		ActorID:     in.ActorID,
		Notes:       in.Notes,
		AssessorID:  in.AssessorID,
		Grades:      grades,
	}); err != nil {
		return fmt.Errorf("process event: apply transition: %w", err)
	}

	// 5. Keep the customer-facing order status in step with the workflow.
	s.syncOrderStatus(ctx, in.OrderNumber, newStatus, in.Timestamp)

	s.log.Info().
		Str("order", in.OrderNumber).
		Str("status", in.Status).
		Str("actor", in.ActorID).
		Msg("assessment event processed")

	return nil
}

// syncOrderStatus mirrors workflow milestones onto the order. Failures are
// non-fatal: the assessment record is the source of truth.
func (s *assessmentService) syncOrderStatus(ctx context.Context, orderNumber string, status domain.AssessmentStatus, ts time.Time) {
	var next domain.OrderStatus
	switch status {
	case domain.AssessmentAssigned:
		next = domain.OrderReceived
	case domain.AssessmentGrading:
		next = domain.OrderInAssessment
	case domain.AssessmentApproved:
		next = domain.OrderCompleted
	default:
		return
	}

	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber, "")
	if err != nil {
		s.log.Warn().Err(err).Str("order", orderNumber).Msg("order lookup for status sync failed")
		return
	}
	if !order.Status.CanTransitionTo(next) {
		return
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderNumber, next, ts, "assessment "+string(status)); err != nil {
		s.log.Warn().Err(err).Str("order", orderNumber).Msg("order status sync failed")
	}
}

func (s *assessmentService) Get(ctx context.Context, orderNumber string) (*domain.Assessment, error) {
	return s.assessmentRepo.FindByOrderNumber(ctx, orderNumber)
}

func (s *assessmentService) List(ctx context.Context, filter ports.ListAssessmentsFilter) ([]domain.Assessment, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.assessmentRepo.List(ctx, filter)
}
