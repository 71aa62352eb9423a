package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/salon-booking/internal/repository"
)

// AdminUserHandler exposes the user list and manual loyalty
// adjustments to administrators.
type AdminUserHandler struct {
	Users   *repository.UserRepo
	Loyalty *repository.LoyaltyRepo
}

func NewAdminUserHandler(users *repository.UserRepo, loyalty *repository.LoyaltyRepo) *AdminUserHandler {
	if users == nil || loyalty == nil {
		panic("nil repository passed to NewAdminUserHandler")
	}
	return &AdminUserHandler{Users: users, Loyalty: loyalty}
}

type adminUserItem struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
}

// List handles GET /v1/admin/users?q=. The optional q matches name or
// phone substrings.
func (h *AdminUserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	users, err := h.Users.Search(ctx, c.QueryParam("q"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]adminUserItem, 0, len(users))
	for _, u := range users {
		items = append(items, adminUserItem{
			ID: u.ID, Name: u.Name, Phone: u.Phone, Role: u.Role,
			LoyaltyPoints: u.LoyaltyPoints, CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": items})
}

type adjustReq struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// AdjustPoints handles POST /v1/admin/users/:id/points for manual
// goodwill credits or corrections. The delta is signed and recorded in
// the ledger with the given reason.
func (h *AdminUserHandler) AdjustPoints(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req adjustReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Delta == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delta must be non-zero"})
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "adjustment"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	balance, err := h.Loyalty.Adjust(ctx, id, req.Delta, reason)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "adjust failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"loyalty_points": balance})
}
