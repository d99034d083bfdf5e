package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/encontro-app/encontro/internal/api/metrics"
	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

// WalletHandler exposes the caller's wallet: deposits, balance, history.
type WalletHandler struct {
	service ports.WalletService
}

func NewWalletHandler(service ports.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

type depositRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type walletResponse struct {
	Balance float64 `json:"balance"`
}

type historyResponse struct {
	Entries []*domain.LedgerEntry `json:"entries"`
}

// Deposit handles POST /v1/wallet/deposit.
//
// @Summary      Deposit into the caller's wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      depositRequest  true  "Deposit amount"
// @Success      200   {object}  walletResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/wallet/deposit [post]
func (h *WalletHandler) Deposit(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	var req depositRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Deposit(c.Request().Context(), auth, req.Amount)
	if err != nil {
		metrics.DepositsTotal.WithLabelValues(depositResult(err)).Inc()
		return err
	}
	metrics.DepositsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, walletResponse{Balance: result.Balance})
}

// Balance handles GET /v1/wallet.
//
// @Summary      Get the caller's wallet balance
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  walletResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/wallet [get]
func (h *WalletHandler) Balance(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	result, err := h.service.Balance(c.Request().Context(), auth)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, walletResponse{Balance: result.Balance})
}

// History handles GET /v1/wallet/history.
//
// @Summary      List the caller's wallet ledger entries, newest first
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/wallet/history [get]
func (h *WalletHandler) History(c echo.Context) error {
	auth, err := ctxAuth(c)
	if err != nil {
		return err
	}

	entries, err := h.service.History(c.Request().Context(), auth)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, historyResponse{Entries: entries})
}

func depositResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrDepositLimit):
		return "limit_exceeded"
	default:
		return "error"
	}
}
