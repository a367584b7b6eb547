package ports

import (
	"context"
	"time"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// GradesInput holds a 4C grading result.
type GradesInput struct {
	Cut         string
	Color       string
	Clarity     string
	CaratWeight float64
}

// AssessmentEventInput carries a workflow update from a staff device.
type AssessmentEventInput struct {
	OrderNumber string
	Status      string
	Timestamp   time.Time
	ActorID     string
	AssessorID  string // only meaningful for "assigned" events
	Notes       string
	Grades      *GradesInput // optional
}

// AssessmentService processes workflow events and exposes read access to
// assessments.
type AssessmentService interface {
	// Process validates, deduplicates, and applies a single workflow event.
	Process(ctx context.Context, in AssessmentEventInput) error
	Get(ctx context.Context, orderNumber string) (*domain.Assessment, error)
	List(ctx context.Context, filter ListAssessmentsFilter) ([]domain.Assessment, int64, error)
}
