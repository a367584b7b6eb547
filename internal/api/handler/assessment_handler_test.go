package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

type stubDispatcher struct {
	events []ports.AssessmentEventInput
}

func (s *stubDispatcher) Enqueue(event ports.AssessmentEventInput) {
	s.events = append(s.events, event)
}

func (s *stubDispatcher) EnqueueBatch(events []ports.AssessmentEventInput) {
	s.events = append(s.events, events...)
}

type stubAssessmentService struct {
	processFn func(ctx context.Context, in ports.AssessmentEventInput) error
	getFn     func(ctx context.Context, orderNumber string) (*domain.Assessment, error)
	listFn    func(ctx context.Context, filter ports.ListAssessmentsFilter) ([]domain.Assessment, int64, error)
}

func (s *stubAssessmentService) Process(ctx context.Context, in ports.AssessmentEventInput) error {
	return s.processFn(ctx, in)
}

func (s *stubAssessmentService) Get(ctx context.Context, orderNumber string) (*domain.Assessment, error) {
	return s.getFn(ctx, orderNumber)
}

func (s *stubAssessmentService) List(ctx context.Context, filter ports.ListAssessmentsFilter) ([]domain.Assessment, int64, error) {
	return s.listFn(ctx, filter)
}

func TestAssessmentHandler_Receive_Enqueues(t *testing.T) {
	dispatcher := &stubDispatcher{}
	handler := NewAssessmentHandler(&stubAssessmentService{}, dispatcher)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/assessments/events",
		`{"order_number":"GEM-0000BEEF","status":"grading","timestamp":"2026-08-30T10:00:00Z"}`)
	c.Set("user_id", "staff_1")
	c.Set("role", "assessment_staff")

	if err := handler.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(dispatcher.events) != 1 {
		t.Fatalf("expected 1 enqueued event, got %d", len(dispatcher.events))
	}
	ev := dispatcher.events[0]
	if ev.OrderNumber != "GEM-0000BEEF" || ev.Status != "grading" || ev.ActorID != "staff_1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestAssessmentHandler_Receive_RejectsUnknownStatus(t *testing.T) {
	dispatcher := &stubDispatcher{}
	handler := NewAssessmentHandler(&stubAssessmentService{}, dispatcher)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/assessments/events",
		`{"order_number":"GEM-0000BEEF","status":"teleported","timestamp":"2026-08-30T10:00:00Z"}`)
	c.Set("user_id", "staff_1")
	c.Set("role", "assessment_staff")

	if err := handler.Receive(c); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(dispatcher.events) != 0 {
		t.Fatalf("invalid event must not be enqueued")
	}
}

func TestAssessmentHandler_ReceiveBatch(t *testing.T) {
	dispatcher := &stubDispatcher{}
	handler := NewAssessmentHandler(&stubAssessmentService{}, dispatcher)

	body := `[
		{"order_number":"GEM-0000BEEF","status":"grading","timestamp":"2026-08-30T10:00:00Z"},
		{"order_number":"GEM-0000CAFE","status":"review","timestamp":"2026-08-30T10:01:00Z"}
	]`
	c, rec := newJSONContext(t, http.MethodPost, "/v1/assessments/events/batch", body)
	c.Set("user_id", "staff_1")
	c.Set("role", "assessment_staff")

	if err := handler.ReceiveBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(dispatcher.events) != 2 {
		t.Fatalf("expected 2 enqueued events, got %d", len(dispatcher.events))
	}
}

func TestAssessmentHandler_ReceiveBatch_Empty(t *testing.T) {
	handler := NewAssessmentHandler(&stubAssessmentService{}, &stubDispatcher{})

	c, _ := newJSONContext(t, http.MethodPost, "/v1/assessments/events/batch", `[]`)
	c.Set("user_id", "staff_1")
	c.Set("role", "assessment_staff")

	if err := handler.ReceiveBatch(c); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

func TestAssessmentHandler_Assign_Synchronous(t *testing.T) {
	var processed *ports.AssessmentEventInput
	svc := &stubAssessmentService{
		processFn: func(ctx context.Context, in ports.AssessmentEventInput) error {
			processed = &in
			return nil
		},
		getFn: func(ctx context.Context, orderNumber string) (*domain.Assessment, error) {
			return &domain.Assessment{OrderNumber: orderNumber, Status: domain.AssessmentAssigned, AssessorID: "staff_9"}, nil
		},
	}
	handler := NewAssessmentHandler(svc, &stubDispatcher{})

	c, rec := newJSONContext(t, http.MethodPost, "/v1/assessments/GEM-0000BEEF/assign",
		`{"assessor_id":"staff_9"}`)
	c.SetParamNames("order_number")
	c.SetParamValues("GEM-0000BEEF")
	c.Set("user_id", "mgr_1")
	c.Set("role", "manager")

	if err := handler.Assign(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if processed == nil || processed.Status != string(domain.AssessmentAssigned) || processed.AssessorID != "staff_9" {
		t.Fatalf("unexpected processed event: %+v", processed)
	}
}

func TestAssessmentHandler_Approve_InvalidTransition(t *testing.T) {
	svc := &stubAssessmentService{
		processFn: func(ctx context.Context, in ports.AssessmentEventInput) error {
			return domain.ErrInvalidTransition
		},
	}
	handler := NewAssessmentHandler(svc, &stubDispatcher{})

	c, _ := newJSONContext(t, http.MethodPost, "/v1/assessments/GEM-0000BEEF/approve", "")
	c.SetParamNames("order_number")
	c.SetParamValues("GEM-0000BEEF")
	c.Set("user_id", "mgr_1")
	c.Set("role", "manager")

	if err := handler.Approve(c); err == nil {
		t.Fatalf("expected 422 error for approving outside review")
	}
}

func TestAssessmentHandler_Get_NotFound(t *testing.T) {
	svc := &stubAssessmentService{
		getFn: func(ctx context.Context, orderNumber string) (*domain.Assessment, error) {
			return nil, domain.ErrAssessmentNotFound
		},
	}
	handler := NewAssessmentHandler(svc, &stubDispatcher{})

	c, rec := newJSONContext(t, http.MethodGet, "/v1/assessments/GEM-MISSING", "")
	c.SetParamNames("order_number")
	c.SetParamValues("GEM-MISSING")

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
