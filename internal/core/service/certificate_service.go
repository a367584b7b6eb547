package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

type CertificateService struct {
	certRepo       ports.CertificateRepository
	assessmentRepo ports.AssessmentRepository
	logger         zerolog.Logger
}

func NewCertificateService(certRepo ports.CertificateRepository, assessmentRepo ports.AssessmentRepository, logger zerolog.Logger) *CertificateService {
	return &CertificateService{certRepo: certRepo, assessmentRepo: assessmentRepo, logger: logger}
}

// Issue creates a certificate for an approved assessment. One certificate
// per assessment: re-issuing returns ErrCertificateExists.
func (s *CertificateService) Issue(ctx context.Context, input ports.IssueCertificateInput) (*domain.Certificate, error) {
	assessment, err := s.assessmentRepo.FindByOrderNumber(ctx, input.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("issue certificate: %w", err)
	}
	if assessment.Status != domain.AssessmentApproved {
		return nil, fmt.Errorf("issue certificate: %w (status %s)", domain.ErrNotApproved, assessment.Status)
	}
	if assessment.Grades == nil {
		return nil, fmt.Errorf("issue certificate: %w (no grades recorded)", domain.ErrNotApproved)
	}

	if existing, err := s.certRepo.FindByAssessmentID(ctx, assessment.ID); err == nil && existing != nil {
		return nil, domain.ErrCertificateExists
	} else if err != nil && !errors.Is(err, domain.ErrCertificateNotFound) {
		return nil, fmt.Errorf("issue certificate: %w", err)
	}

	cert := &domain.Certificate{
		Number:       generateCertificateNumber(),
		AssessmentID: assessment.ID,
		OrderID:      assessment.OrderID,
		OrderNumber:  assessment.OrderNumber,
		IssuedBy:     input.IssuedBy,
		IssuedAt:     time.Now().UTC(),
		Grades:       *assessment.Grades,
	}

	if err := s.certRepo.Create(ctx, cert); err != nil {
		s.logger.Error().Err(err).Str("order", input.OrderNumber).Msg("failed to issue certificate")
		return nil, err
	}

	s.logger.Info().Str("certificate", cert.Number).Str("order", cert.OrderNumber).Msg("certificate issued")
	return cert, nil
}

// Verify looks up a certificate by number. Public: no authentication is
// required to confirm a certificate exists and read its grades.
func (s *CertificateService) Verify(ctx context.Context, number string) (*domain.Certificate, error) {
	return s.certRepo.FindByNumber(ctx, number)
}

// generateCertificateNumber returns a unique number in the format GLC-XXXXXXXXXX.
func generateCertificateNumber() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("GLC-%010X", time.Now().UnixNano()&0xFFFFFFFFFF)
	}
	return fmt.Sprintf("GLC-%010X", b)
}
