package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue workflow events.
type EventDispatcher interface {
	Enqueue(event ports.AssessmentEventInput)
	EnqueueBatch(events []ports.AssessmentEventInput)
}

// AssessmentHandler handles the staff-facing assessment workflow surface.
type AssessmentHandler struct {
	service    ports.AssessmentService
	dispatcher EventDispatcher
}

func NewAssessmentHandler(service ports.AssessmentService, dispatcher EventDispatcher) *AssessmentHandler {
	return &AssessmentHandler{service: service, dispatcher: dispatcher}
}

// List handles GET /v1/assessments.
//
// @Summary      List assessments
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Filter by workflow status"
// @Param        assessor_id  query     string  false  "Filter by assigned assessor"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 20, max 100)"
// @Success      200          {object}  listAssessmentsResponse
// @Failure      401          {object}  errorResponse
// @Router       /v1/assessments [get]
func (h *AssessmentHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	assessments, total, err := h.service.List(c.Request().Context(), ports.ListAssessmentsFilter{
		Status:     c.QueryParam("status"),
		AssessorID: c.QueryParam("assessor_id"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	data := make([]assessmentSummaryResponse, 0, len(assessments))
	for _, a := range assessments {
		data = append(data, assessmentSummaryResponse{
			OrderNumber: a.OrderNumber,
			Status:      a.Status,
			AssessorID:  a.AssessorID,
			Grades:      a.Grades,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
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

	return c.JSON(http.StatusOK, listAssessmentsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

// Get handles GET /v1/assessments/:order_number.
//
// @Summary      Get the assessment for an order
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        order_number  path      string  true  "Order number"
// @Success      200           {object}  domain.Assessment
// @Failure      404           {object}  errorResponse
// @Router       /v1/assessments/{order_number} [get]
func (h *AssessmentHandler) Get(c echo.Context) error {
	assessment, err := h.service.Get(c.Request().Context(), c.Param("order_number"))
	if err != nil {
		if errors.Is(err, domain.ErrAssessmentNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "assessment not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, assessment)
}

// Receive handles POST /v1/assessments/events — enqueues a single workflow
// event from a staff device, returns 202. Processing is asynchronous; events
// for the same order are applied in arrival order.
//
// @Summary      Ingest a single assessment workflow event
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assessmentEventRequest  true  "Workflow event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assessments/events [post]
func (h *AssessmentHandler) Receive(c echo.Context) error {
	var req assessmentEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	h.dispatcher.Enqueue(toEventInput(req, userID))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /v1/assessments/events/batch — enqueues a batch
// of workflow events, returns 202.
//
// @Summary      Ingest a batch of assessment workflow events
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []assessmentEventRequest  true  "Array of workflow events"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assessments/events/batch [post]
func (h *AssessmentHandler) ReceiveBatch(c echo.Context) error {
	var reqs []assessmentEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	inputs := make([]ports.AssessmentEventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toEventInput(req, userID))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "events accepted",
		Count:   len(inputs),
	})
}

// Assign handles POST /v1/assessments/:order_number/assign — synchronous
// assignment so the caller sees an invalid transition immediately.
//
// @Summary      Assign an assessment to an assessor
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order_number  path      string         true  "Order number"
// @Param        body          body      assignRequest  true  "Assignment details"
// @Success      200           {object}  domain.Assessment
// @Failure      404           {object}  errorResponse
// @Failure      422           {object}  errorResponse
// @Router       /v1/assessments/{order_number}/assign [post]
func (h *AssessmentHandler) Assign(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	orderNumber := c.Param("order_number")
	err = h.service.Process(c.Request().Context(), ports.AssessmentEventInput{
		OrderNumber: orderNumber,
		Status:      string(domain.AssessmentAssigned),
		Timestamp:   time.Now().UTC(),
		ActorID:     userID,
		AssessorID:  req.AssessorID,
	})
	if err != nil {
		return mapAssessmentError(c, err)
	}

	assessment, err := h.service.Get(c.Request().Context(), orderNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assessment)
}

// Approve handles POST /v1/assessments/:order_number/approve — synchronous
// sign-off by a reviewer.
//
// @Summary      Approve an assessment under review
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        order_number  path      string  true  "Order number"
// @Success      200           {object}  domain.Assessment
// @Failure      404           {object}  errorResponse
// @Failure      422           {object}  errorResponse
// @Router       /v1/assessments/{order_number}/approve [post]
func (h *AssessmentHandler) Approve(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	orderNumber := c.Param("order_number")
	err = h.service.Process(c.Request().Context(), ports.AssessmentEventInput{
		OrderNumber: orderNumber,
		Status:      string(domain.AssessmentApproved),
		Timestamp:   time.Now().UTC(),
		ActorID:     userID,
	})
	if err != nil {
		return mapAssessmentError(c, err)
	}

	assessment, err := h.service.Get(c.Request().Context(), orderNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assessment)
}

func mapAssessmentError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrAssessmentNotFound) || errors.Is(err, domain.ErrOrderNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "assessment not found"})
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return err
}
