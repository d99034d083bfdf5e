package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/encontro-app/encontro/internal/api/metrics"
	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

// EnrollmentHandler handles the enroll / unenroll endpoints, which settle the
// caller's wallet against the event roster.
type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Enroll handles POST /v1/events/:id/enroll.
//
// @Summary      Enroll in an event, debiting the price from the wallet
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  enrollmentResponse
// @Failure      401  {object}  errorResponse
// @Failure      402  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/events/{id}/enroll [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	result, err := h.service.Enroll(c.Request().Context(), auth, c.Param("id"))
	if err != nil {
		metrics.EnrollmentsTotal.WithLabelValues(enrollResult(err)).Inc()
		return err
	}
	metrics.EnrollmentsTotal.WithLabelValues("enrolled").Inc()

	return c.JSON(http.StatusOK, toEnrollmentResponse(result))
}

// Unenroll handles POST /v1/events/:id/unenroll.
//
// @Summary      Leave an event, refunding the price to the wallet
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  enrollmentResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/events/{id}/unenroll [post]
func (h *EnrollmentHandler) Unenroll(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	result, err := h.service.Unenroll(c.Request().Context(), auth, c.Param("id"))
	if err != nil {
		metrics.UnenrollmentsTotal.WithLabelValues(unenrollResult(err)).Inc()
		return err
	}
	metrics.UnenrollmentsTotal.WithLabelValues("unenrolled").Inc()

	return c.JSON(http.StatusOK, toEnrollmentResponse(result))
}

// Toggle handles PUT /v1/events/:id/enrollment, flipping the caller's
// enrollment state. Old clients depend on it; new ones should call the
// explicit enroll/unenroll endpoints.
//
// @Summary      Toggle enrollment (legacy)
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  enrollmentResponse
// @Failure      401  {object}  errorResponse
// @Failure      402  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/events/{id}/enrollment [put]
// @Deprecated
func (h *EnrollmentHandler) Toggle(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	result, err := h.service.Toggle(c.Request().Context(), auth, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEnrollmentResponse(result))
}

func toEnrollmentResponse(r *ports.EnrollmentResult) enrollmentResponse {
	return enrollmentResponse{
		EventID:  r.EventID,
		Enrolled: r.Enrolled,
		Price:    r.Price,
		Balance:  r.Balance,
	}
}

func enrollResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrEventFull):
		return "event_full"
	case errors.Is(err, domain.ErrAlreadyEnrolled), errors.Is(err, domain.ErrSettlementConflict):
		return "conflict"
	default:
		return "error"
	}
}

func unenrollResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotEnrolled):
		return "not_enrolled"
	case errors.Is(err, domain.ErrSettlementConflict):
		return "conflict"
	default:
		return "error"
	}
}
