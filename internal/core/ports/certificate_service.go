package ports

import (
	"context"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// IssueCertificateInput identifies the assessment to certify and who signs
// it off.
type IssueCertificateInput struct {
	OrderNumber string
	IssuedBy    string
}

// CertificateService issues certificates for approved assessments and
// serves public verification lookups.
type CertificateService interface {
	Issue(ctx context.Context, input IssueCertificateInput) (*domain.Certificate, error)
	Verify(ctx context.Context, number string) (*domain.Certificate, error)
}
