package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/encontro-app/encontro/internal/core/ports"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Create handles POST /v1/events.
//
// @Summary      Create a new event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  eventDetailResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "date must be RFC3339")
	}

	event, err := h.service.Create(c.Request().Context(), auth, ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Price:       req.Price,
		Capacity:    req.Capacity,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toEventDetailResponse(event))
}

// Get handles GET /v1/events/:id.
//
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventDetailResponse(event))
}

// List handles GET /v1/events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        category  query     string  false  "Filter by category ID"
// @Param        upcoming  query     bool    false  "Only events with date >= now"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listEventsResponse
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	upcoming, _ := strconv.ParseBool(c.QueryParam("upcoming"))

	result, err := h.service.List(c.Request().Context(), ports.ListEventsInput{
		CategoryID:   c.QueryParam("category"),
		UpcomingOnly: upcoming,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	data := make([]eventResponse, 0, len(result.Items))
	for _, e := range result.Items {
		data = append(data, toEventResponse(e))
	}

	return c.JSON(http.StatusOK, listEventsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Update handles PUT /v1/events/:id. Only the creator or an admin may edit.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Event details"
// @Success      200   {object}  eventDetailResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "date must be RFC3339")
	}

	event, err := h.service.Update(c.Request().Context(), auth, c.Param("id"), ports.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Price:       req.Price,
		Capacity:    req.Capacity,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEventDetailResponse(event))
}

// Delete handles DELETE /v1/events/:id. Only the creator or an admin.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), auth, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
