package handler

import (
	"time"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

type gradesRequest struct {
	Cut         string  `json:"cut"          validate:"required"`
	Color       string  `json:"color"        validate:"required"`
	Clarity     string  `json:"clarity"      validate:"required"`
	CaratWeight float64 `json:"carat_weight" validate:"required,gt=0"`
}

// assessmentEventRequest is one workflow update from a staff device.
type assessmentEventRequest struct {
	OrderNumber string         `json:"order_number" validate:"required"`
	Status      string         `json:"status"       validate:"required,oneof=assigned grading review approved rejected"`
	Timestamp   time.Time      `json:"timestamp"    validate:"required"`
	AssessorID  string         `json:"assessor_id,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Grades      *gradesRequest `json:"grades,omitempty"`
}

type assignRequest struct {
	AssessorID string `json:"assessor_id" validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// assessmentSummaryResponse omits status_history to keep list payloads small.
type assessmentSummaryResponse struct {
	OrderNumber string                  `json:"order_number"`
	Status      domain.AssessmentStatus `json:"status"`
	AssessorID  string                  `json:"assessor_id,omitempty"`
	Grades      *domain.Grades          `json:"grades,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

type listAssessmentsResponse struct {
	Data       []assessmentSummaryResponse `json:"data"`
	Pagination paginationResponse          `json:"pagination"`
}

// toEventInput maps the HTTP request to the service DTO.
func toEventInput(r assessmentEventRequest, actorID string) ports.AssessmentEventInput {
	in := ports.AssessmentEventInput{
		OrderNumber: r.OrderNumber,
		Status:      r.Status,
		Timestamp:   r.Timestamp,
		ActorID:     actorID,
		AssessorID:  r.AssessorID,
		Notes:       r.Notes,
	}
	if r.Grades != nil {
		in.Grades = &ports.GradesInput{
			Cut:         r.Grades.Cut,
			Color:       r.Grades.Color,
			Clarity:     r.Grades.Clarity,
			CaratWeight: r.Grades.CaratWeight,
		}
	}
	return in
}
