package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/api/metrics"
	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

// CertificateHandler handles certificate issuance and public verification.
type CertificateHandler struct {
	service ports.CertificateService
}

func NewCertificateHandler(service ports.CertificateService) *CertificateHandler {
	return &CertificateHandler{service: service}
}

type issueCertificateRequest struct {
	OrderNumber string `json:"order_number" validate:"required"`
}

// Issue handles POST /v1/certificates.
//
// @Summary      Issue a certificate for an approved assessment
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      issueCertificateRequest  true  "Assessment to certify"
// @Success      201   {object}  domain.Certificate
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/certificates [post]
func (h *CertificateHandler) Issue(c echo.Context) error {
	var req issueCertificateRequest
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

	cert, err := h.service.Issue(c.Request().Context(), ports.IssueCertificateInput{
		OrderNumber: req.OrderNumber,
		IssuedBy:    userID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAssessmentNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "assessment not found"})
		}
		if errors.Is(err, domain.ErrCertificateExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "certificate already issued"})
		}
		if errors.Is(err, domain.ErrNotApproved) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "assessment not approved")
		}
		return err
	}

	metrics.CertificatesIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, cert)
}

// Get handles GET /v1/certificates/:number for authenticated staff.
//
// @Summary      Get a certificate by number
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Param        number  path      string  true  "Certificate number (e.g. GLC-1A2B3C4D5E)"
// @Success      200     {object}  domain.Certificate
// @Failure      404     {object}  errorResponse
// @Router       /v1/certificates/{number} [get]
func (h *CertificateHandler) Get(c echo.Context) error {
	cert, err := h.service.Verify(c.Request().Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, domain.ErrCertificateNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "certificate not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, cert)
}

// Verify handles GET /certificates/verify/:number — the public lookup
// printed on certificate documents. No authentication required.
//
// @Summary      Verify a certificate
// @Tags         certificates
// @Produce      json
// @Param        number  path      string  true  "Certificate number"
// @Success      200     {object}  domain.Certificate
// @Failure      404     {object}  errorResponse
// @Router       /certificates/verify/{number} [get]
func (h *CertificateHandler) Verify(c echo.Context) error {
	cert, err := h.service.Verify(c.Request().Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, domain.ErrCertificateNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "certificate not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, cert)
}
