package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

// AdminHandler backs the administration panel: dashboard counters and user
// management. All routes are behind the RequireAdmin middleware.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type dashboardResponse struct {
	TotalUsers     int64           `json:"total_users"`
	TotalEvents    int64           `json:"total_events"`
	UpcomingEvents int64           `json:"upcoming_events"`
	LatestEvents   []eventResponse `json:"latest_events"`
}

type listUsersResponse struct {
	Users []*domain.User `json:"users"`
}

type adminUpdateUserRequest struct {
	Username  string  `json:"username"   validate:"required,max=28"`
	Email     string  `json:"email"      validate:"required,email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Document  string  `json:"document"`
	BirthDate string  `json:"birth_date"`
	Balance   float64 `json:"balance"    validate:"gte=0"`
	IsAdmin   bool    `json:"is_admin"`
	// Password, when present, replaces the stored hash.
	Password string `json:"password,omitempty"`
}

// Dashboard handles GET /v1/admin/dashboard.
//
// @Summary      Admin dashboard counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	result, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	latest := make([]eventResponse, 0, len(result.LatestEvents))
	for _, e := range result.LatestEvents {
		latest = append(latest, toEventResponse(e))
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TotalUsers:     result.TotalUsers,
		TotalEvents:    result.TotalEvents,
		UpcomingEvents: result.UpcomingEvents,
		LatestEvents:   latest,
	})
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: users})
}

// UpdateUser handles PUT /v1/admin/users/:id.
//
// @Summary      Update a user, including balance corrections
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "User ID"
// @Param        body  body      adminUpdateUserRequest  true  "User fields"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req adminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	var birthDate time.Time
	if req.BirthDate != "" {
		var err error
		birthDate, err = time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "birth_date must be YYYY-MM-DD")
		}
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), ports.AdminUpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Document:  req.Document,
		BirthDate: birthDate,
		Balance:   req.Balance,
		IsAdmin:   req.IsAdmin,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /v1/admin/users/:id.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
