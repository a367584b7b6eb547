package domain

import "time"

// AssessmentStatus represents the workflow state of a diamond assessment.
type AssessmentStatus string

const (
	AssessmentQueued   AssessmentStatus = "queued"
	AssessmentAssigned AssessmentStatus = "assigned"
	AssessmentGrading  AssessmentStatus = "grading"
	AssessmentReview   AssessmentStatus = "review"
	AssessmentApproved AssessmentStatus = "approved"
	AssessmentRejected AssessmentStatus = "rejected"
)

// validAssessmentTransitions defines the allowed workflow transitions.
// A rejected assessment goes back to grading for rework.
var validAssessmentTransitions = map[AssessmentStatus][]AssessmentStatus{
	AssessmentQueued:   {AssessmentAssigned},
	AssessmentAssigned: {AssessmentGrading},
	AssessmentGrading:  {AssessmentReview},
	AssessmentReview:   {AssessmentApproved, AssessmentRejected},
	AssessmentRejected: {AssessmentGrading},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s AssessmentStatus) CanTransitionTo(next AssessmentStatus) bool {
	for _, allowed := range validAssessmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Grades holds the 4C grading result of an assessment.
type Grades struct {
	Cut         string  `json:"cut" bson:"cut"`
	Color       string  `json:"color" bson:"color"`
	Clarity     string  `json:"clarity" bson:"clarity"`
	CaratWeight float64 `json:"carat_weight" bson:"carat_weight"`
}

// AssessmentHistoryEntry records a single workflow transition.
type AssessmentHistoryEntry struct {
	Status    AssessmentStatus `json:"status" bson:"status"`
	Timestamp time.Time        `json:"timestamp" bson:"timestamp"`
	ActorID   string           `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Notes     string           `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Assessment is the grading workflow attached to one order.
type Assessment struct {
	ID            string                   `json:"id" bson:"_id,omitempty"`
	OrderID       string                   `json:"order_id" bson:"order_id"`
	OrderNumber   string                   `json:"order_number" bson:"order_number"`
	AssessorID    string                   `json:"assessor_id,omitempty" bson:"assessor_id,omitempty"`
	Grades        *Grades                  `json:"grades,omitempty" bson:"grades,omitempty"`
	Status        AssessmentStatus         `json:"status" bson:"status"`
	CreatedAt     time.Time                `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at" bson:"updated_at"`
	StatusHistory []AssessmentHistoryEntry `json:"status_history" bson:"status_history"`
}

// AssessmentEvent represents a workflow update received from a staff device.
type AssessmentEvent struct {
	OrderNumber string
	Status      AssessmentStatus
	Timestamp   time.Time
	ActorID     string
	Notes       string
	Grades      *Grades // optional, supplied when grading completes
}
