package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

type stubOrderService struct {
	createFn func(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error)
	getFn    func(ctx context.Context, access ports.OrderAccess) (*domain.Order, error)
	listFn   func(ctx context.Context, input ports.ListOrdersInput) ([]domain.Order, int64, error)
	cancelFn func(ctx context.Context, access ports.OrderAccess) error
}

func (s *stubOrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubOrderService) GetOrder(ctx context.Context, access ports.OrderAccess) (*domain.Order, error) {
	return s.getFn(ctx, access)
}

func (s *stubOrderService) ListOrders(ctx context.Context, input ports.ListOrdersInput) ([]domain.Order, int64, error) {
	return s.listFn(ctx, input)
}

func (s *stubOrderService) CancelOrder(ctx context.Context, access ports.OrderAccess) error {
	return s.cancelFn(ctx, access)
}

const createOrderBody = `{"items":[{"gem_type":"diamond","carat_weight":1.2}],"service_level":"express"}`

func TestOrderHandler_Create_Success(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
			if input.CustomerID != "cust_1" {
				t.Fatalf("customer must come from claims, got %q", input.CustomerID)
			}
			if input.IdempotencyKey != "key-1" {
				t.Fatalf("idempotency key not forwarded: %q", input.IdempotencyKey)
			}
			return &ports.OrderResult{
				OrderNumber: "GEM-0000BEEF",
				Status:      string(domain.OrderPending),
				CreatedAt:   time.Now().UTC(),
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/orders", createOrderBody)
	c.Request().Header.Set("Idempotency-Key", "key-1")
	c.Set("user_id", "cust_1")
	c.Set("role", "customer")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["order_number"] != "GEM-0000BEEF" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestOrderHandler_Create_IdempotentReplayReturns200(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
			return &ports.OrderResult{OrderNumber: "GEM-0000BEEF", Status: "pending", AlreadyExisted: true}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/orders", createOrderBody)
	c.Set("user_id", "cust_1")
	c.Set("role", "customer")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("replay must return 200, got %d", rec.Code)
	}
}

func TestOrderHandler_Create_RejectsUnknownServiceLevel(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/orders",
		`{"items":[{"gem_type":"diamond","carat_weight":1.2}],"service_level":"overnight"}`)
	c.Set("user_id", "cust_1")
	c.Set("role", "customer")

	if err := handler.Create(c); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestOrderHandler_Get_ForwardsCallerIdentity(t *testing.T) {
	stub := &stubOrderService{
		getFn: func(ctx context.Context, access ports.OrderAccess) (*domain.Order, error) {
			if access.Role != domain.RoleCustomer || access.CustomerID != "cust_1" {
				t.Fatalf("unexpected access: %+v", access)
			}
			return &domain.Order{OrderNumber: access.OrderNumber, Status: domain.OrderPending}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newJSONContext(t, http.MethodGet, "/v1/orders/GEM-0000BEEF", "")
	c.SetParamNames("order_number")
	c.SetParamValues("GEM-0000BEEF")
	c.Set("user_id", "cust_1")
	c.Set("role", "customer")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	stub := &stubOrderService{
		getFn: func(ctx context.Context, access ports.OrderAccess) (*domain.Order, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newJSONContext(t, http.MethodGet, "/v1/orders/GEM-MISSING", "")
	c.SetParamNames("order_number")
	c.SetParamValues("GEM-MISSING")
	c.Set("user_id", "cust_1")
	c.Set("role", "customer")

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOrderHandler_List_CustomerPinnedToOwnOrders(t *testing.T) {
	stub := &stubOrderService{
		listFn: func(ctx context.Context, input ports.ListOrdersInput) ([]domain.Order, int64, error) {
			if input.CustomerID != "cust_1" {
				t.Fatalf("customer listing must be pinned to the caller, got %q", input.CustomerID)
			}
			return []domain.Order{{OrderNumber: "GEM-0000BEEF"}}, 1, nil
		},
	}
	handler := NewOrderHandler(stub)

	// A customer asking for someone else's orders still only gets their own.
	c, rec := newJSONContext(t, http.MethodGet, "/v1/orders?customer_id=cust_2", "")
	c.Set("user_id", "cust_1")
	c.Set("role", "customer")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOrderHandler_List_StaffMayFilterByCustomer(t *testing.T) {
	stub := &stubOrderService{
		listFn: func(ctx context.Context, input ports.ListOrdersInput) ([]domain.Order, int64, error) {
			if input.CustomerID != "cust_2" {
				t.Fatalf("staff filter not forwarded, got %q", input.CustomerID)
			}
			return nil, 0, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newJSONContext(t, http.MethodGet, "/v1/orders?customer_id=cust_2", "")
	c.Set("user_id", "staff_1")
	c.Set("role", "manager")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestOrderHandler_Cancel_InvalidTransition(t *testing.T) {
	stub := &stubOrderService{
		cancelFn: func(ctx context.Context, access ports.OrderAccess) error {
			return domain.ErrInvalidTransition
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/orders/GEM-0000BEEF/cancel", "")
	c.SetParamNames("order_number")
	c.SetParamValues("GEM-0000BEEF")
	c.Set("user_id", "cust_1")
	c.Set("role", "customer")

	if err := handler.Cancel(c); err == nil {
		t.Fatalf("expected 422 error for late cancellation")
	}
}
