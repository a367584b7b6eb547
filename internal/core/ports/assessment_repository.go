package ports

import (
	"context"
	"time"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// ListAssessmentsFilter narrows and pages assessment listings.
type ListAssessmentsFilter struct {
	Status     string // empty = all statuses
	AssessorID string // empty = all assessors
	Page       int
	Limit      int
}

// ApplyTransitionInput is the atomic update applied when an assessment
// moves through its workflow.
type ApplyTransitionInput struct {
	OrderNumber string
	Status      domain.AssessmentStatus
	Timestamp   time.Time
	ActorID     string
	Notes       string
	AssessorID  string         // set on assignment, otherwise empty
	Grades      *domain.Grades // set when grading completes, otherwise nil
}

// AssessmentRepository defines the interface for assessment persistence.
type AssessmentRepository interface {
	Create(ctx context.Context, a *domain.Assessment) error
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Assessment, error)
	List(ctx context.Context, filter ListAssessmentsFilter) ([]domain.Assessment, int64, error)
	// ApplyTransition atomically updates status (plus assessor/grades when
	// present) and appends a history entry.
	ApplyTransition(ctx context.Context, in ApplyTransitionInput) error
}
