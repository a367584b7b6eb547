package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/api/metrics"
	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

// OrderHandler handles HTTP requests for assessment order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /v1/orders.
//
// @Summary      Place a new assessment order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createOrderRequest  true   "Order details"
// @Success      201              {object}  createOrderResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{
			GemType:     it.GemType,
			CaratWeight: it.CaratWeight,
			Notes:       it.Notes,
		})
	}

	result, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		Items:          items,
		ServiceLevel:   req.ServiceLevel,
		CustomerID:     userID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		// Replayed idempotency key: hand back the original order unchanged.
		status = http.StatusOK
	} else {
		metrics.OrdersCreatedTotal.WithLabelValues(req.ServiceLevel).Inc()
	}

	return c.JSON(status, createOrderResponse{
		OrderNumber:         result.OrderNumber,
		Status:              result.Status,
		CreatedAt:           result.CreatedAt,
		EstimatedCompletion: result.EstimatedCompletion,
		Links:               orderLinksFor(result.OrderNumber),
	})
}

// Get handles GET /v1/orders/:order_number.
//
// @Summary      Get an order by number
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_number  path      string  true  "Order number (e.g. GEM-7A8B9C2D)"
// @Success      200           {object}  domain.Order
// @Failure      403           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /v1/orders/{order_number} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), ports.OrderAccess{
		OrderNumber: c.Param("order_number"),
		Role:        role,
		CustomerID:  userID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
		}
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List handles GET /v1/orders. Customers see only their own orders; staff
// see everything, optionally filtered by customer_id.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Filter by status"
// @Param        customer_id  query     string  false  "Filter by customer (staff only)"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 20, max 100)"
// @Success      200          {object}  listOrdersResponse
// @Failure      401          {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	customerID := userID
	if role.IsStaff() {
		customerID = c.QueryParam("customer_id")
	}

	orders, total, err := h.service.ListOrders(c.Request().Context(), ports.ListOrdersInput{
		Role:       role,
		CustomerID: customerID,
		Status:     c.QueryParam("status"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	data := make([]orderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		data = append(data, orderSummaryResponse{
			OrderNumber:         o.OrderNumber,
			Status:              o.Status,
			ServiceLevel:        o.ServiceLevel,
			Items:               o.Items,
			CreatedAt:           o.CreatedAt,
			EstimatedCompletion: o.EstimatedCompletion,
			Links:               orderLinksFor(o.OrderNumber),
		})
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return c.JSON(http.StatusOK, listOrdersResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

// Cancel handles POST /v1/orders/:order_number/cancel. Orders are
// cancellable until assessment begins.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_number  path      string  true  "Order number"
// @Success      204           "order cancelled"
// @Failure      403           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Failure      422           {object}  errorResponse
// @Router       /v1/orders/{order_number}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	err = h.service.CancelOrder(c.Request().Context(), ports.OrderAccess{
		OrderNumber: c.Param("order_number"),
		Role:        role,
		CustomerID:  userID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
