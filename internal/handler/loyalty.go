package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/salon-booking/internal/repository"
)

// LoyaltyHandler serves point redemption and the ledger history for
// the current user.
type LoyaltyHandler struct {
	Loyalty *repository.LoyaltyRepo
}

func NewLoyaltyHandler(l *repository.LoyaltyRepo) *LoyaltyHandler {
	if l == nil {
		panic("nil repository passed to NewLoyaltyHandler")
	}
	return &LoyaltyHandler{Loyalty: l}
}

// redeemablePoints are the fixed redemption tiers. 10 points buy 1% of
// discount on the next visit.
var redeemablePoints = map[int64]bool{100: true, 250: true, 500: true}

type redeemReq struct {
	Points int64 `json:"points"`
}

// Redeem handles POST /v1/loyalty/redeem.
func (h *LoyaltyHandler) Redeem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req redeemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !redeemablePoints[req.Points] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "points must be one of 100, 250, 500"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	balance, err := h.Loyalty.Redeem(ctx, userID, req.Points)
	if err != nil {
		if err == repository.ErrInsufficientPoints {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":          "insufficient loyalty points",
				"loyalty_points": balance,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "redeem failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"redeemed":         req.Points,
		"discount_percent": req.Points / 10,
		"loyalty_points":   balance,
	})
}

type ledgerItem struct {
	ID            uint64    `json:"id"`
	Delta         int64     `json:"delta"`
	Reason        string    `json:"reason"`
	AppointmentID *uint64   `json:"appointment_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// History handles GET /v1/loyalty/history.
func (h *LoyaltyHandler) History(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	txs, err := h.Loyalty.History(ctx, userID, 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]ledgerItem, 0, len(txs))
	for _, t := range txs {
		items = append(items, ledgerItem{
			ID: t.ID, Delta: t.Delta, Reason: t.Reason,
			AppointmentID: t.AppointmentID, CreatedAt: t.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"history": items})
}
