package ports

import (
	"context"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// CertificateRepository defines the interface for certificate persistence.
type CertificateRepository interface {
	Create(ctx context.Context, cert *domain.Certificate) error
	FindByNumber(ctx context.Context, number string) (*domain.Certificate, error)
	FindByAssessmentID(ctx context.Context, assessmentID string) (*domain.Certificate, error)
}
