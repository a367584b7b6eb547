package domain

import "time"

// Certificate is the final document issued for an approved assessment.
// Issuance records the grades as they stood at approval time; the
// certificate does not follow later rework.
type Certificate struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Number       string    `json:"number" bson:"number"`
	AssessmentID string    `json:"assessment_id" bson:"assessment_id"`
	OrderID      string    `json:"order_id" bson:"order_id"`
	OrderNumber  string    `json:"order_number" bson:"order_number"`
	IssuedBy     string    `json:"issued_by" bson:"issued_by"`
	IssuedAt     time.Time `json:"issued_at" bson:"issued_at"`
	Grades       Grades    `json:"grades" bson:"grades"`
}
