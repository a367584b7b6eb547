package handler

import (
	"time"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type orderItemRequest struct {
	GemType     string  `json:"gem_type"     validate:"required"`
	CaratWeight float64 `json:"carat_weight" validate:"required,gt=0"`
	Notes       string  `json:"notes,omitempty"`
}

type createOrderRequest struct {
	Items        []orderItemRequest `json:"items"         validate:"required,min=1,dive"`
	ServiceLevel string             `json:"service_level" validate:"required,oneof=express priority standard"`
}

type orderLinks struct {
	Self       string `json:"self"`
	Assessment string `json:"assessment"`
}

type createOrderResponse struct {
	OrderNumber         string     `json:"order_number"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	EstimatedCompletion time.Time  `json:"estimated_completion"`
	Links               orderLinks `json:"_links"`
}

// orderSummaryResponse is the lightweight item used in list responses.
// It intentionally omits status_history to keep payloads small.
type orderSummaryResponse struct {
	OrderNumber         string             `json:"order_number"`
	Status              domain.OrderStatus `json:"status"`
	ServiceLevel        string             `json:"service_level"`
	Items               []domain.OrderItem `json:"items"`
	CreatedAt           time.Time          `json:"created_at"`
	EstimatedCompletion time.Time          `json:"estimated_completion"`
	Links               orderLinks         `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listOrdersResponse struct {
	Data       []orderSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}

func orderLinksFor(orderNumber string) orderLinks {
	return orderLinks{
		Self:       "/v1/orders/" + orderNumber,
		Assessment: "/v1/assessments/" + orderNumber,
	}
}
