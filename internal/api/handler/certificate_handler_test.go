package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

type stubCertificateService struct {
	issueFn  func(ctx context.Context, input ports.IssueCertificateInput) (*domain.Certificate, error)
	verifyFn func(ctx context.Context, number string) (*domain.Certificate, error)
}

func (s *stubCertificateService) Issue(ctx context.Context, input ports.IssueCertificateInput) (*domain.Certificate, error) {
	return s.issueFn(ctx, input)
}

func (s *stubCertificateService) Verify(ctx context.Context, number string) (*domain.Certificate, error) {
	return s.verifyFn(ctx, number)
}

func TestCertificateHandler_Issue(t *testing.T) {
	svc := &stubCertificateService{
		issueFn: func(ctx context.Context, input ports.IssueCertificateInput) (*domain.Certificate, error) {
			if input.OrderNumber != "GEM-0000BEEF" || input.IssuedBy != "mgr_1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Certificate{Number: "GLC-00DEADBEEF", OrderNumber: input.OrderNumber}, nil
		},
	}
	handler := NewCertificateHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/certificates", `{"order_number":"GEM-0000BEEF"}`)
	c.Set("user_id", "mgr_1")
	c.Set("role", "manager")

	if err := handler.Issue(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GLC-00DEADBEEF") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCertificateHandler_Issue_AlreadyIssued(t *testing.T) {
	svc := &stubCertificateService{
		issueFn: func(ctx context.Context, input ports.IssueCertificateInput) (*domain.Certificate, error) {
			return nil, domain.ErrCertificateExists
		},
	}
	handler := NewCertificateHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/certificates", `{"order_number":"GEM-0000BEEF"}`)
	c.Set("user_id", "mgr_1")
	c.Set("role", "manager")

	_ = handler.Issue(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCertificateHandler_Verify_PublicLookup(t *testing.T) {
	svc := &stubCertificateService{
		verifyFn: func(ctx context.Context, number string) (*domain.Certificate, error) {
			if number != "GLC-00DEADBEEF" {
				return nil, domain.ErrCertificateNotFound
			}
			return &domain.Certificate{Number: number, Grades: domain.Grades{Cut: "Excellent"}}, nil
		},
	}
	handler := NewCertificateHandler(svc)

	c, rec := newJSONContext(t, http.MethodGet, "/certificates/verify/GLC-00DEADBEEF", "")
	c.SetParamNames("number")
	c.SetParamValues("GLC-00DEADBEEF")

	if err := handler.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCertificateHandler_Verify_NotFound(t *testing.T) {
	svc := &stubCertificateService{
		verifyFn: func(ctx context.Context, number string) (*domain.Certificate, error) {
			return nil, domain.ErrCertificateNotFound
		},
	}
	handler := NewCertificateHandler(svc)

	c, rec := newJSONContext(t, http.MethodGet, "/certificates/verify/GLC-UNKNOWN", "")
	c.SetParamNames("number")
	c.SetParamValues("GLC-UNKNOWN")

	_ = handler.Verify(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
