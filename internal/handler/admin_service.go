package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/salon-booking/internal/model"
	"github.com/iliyamo/salon-booking/internal/repository"
)

// AdminServiceHandler manages the service catalog. All routes sit
// behind the ADMIN role middleware.
type AdminServiceHandler struct {
	Services *repository.ServiceRepo
}

func NewAdminServiceHandler(svcs *repository.ServiceRepo) *AdminServiceHandler {
	if svcs == nil {
		panic("nil repository passed to NewAdminServiceHandler")
	}
	return &AdminServiceHandler{Services: svcs}
}

// serviceCategories mirrors the categories offered in the admin form.
var serviceCategories = map[string]bool{
	"Hair": true, "Skin": true, "Waxing": true, "Nails": true, "Makeup": true, "Other": true,
}

type serviceReq struct {
	Name        string `json:"name"`
	PriceCents  uint64 `json:"price_cents"`
	DurationMin uint32 `json:"duration_min"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (r *serviceReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if r.PriceCents == 0 {
		return "price_cents must be positive"
	}
	if r.DurationMin == 0 {
		return "duration_min must be positive"
	}
	if r.Category == "" {
		r.Category = "Other"
	}
	if !serviceCategories[r.Category] {
		return "unknown category"
	}
	return ""
}

// Create handles POST /v1/admin/services.
func (h *AdminServiceHandler) Create(c echo.Context) error {
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Services.Create(ctx, model.Service{
		Name:        req.Name,
		PriceCents:  req.PriceCents,
		DurationMin: req.DurationMin,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "service name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create service failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update handles PUT /v1/admin/services/:id.
func (h *AdminServiceHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Services.Update(ctx, model.Service{
		ID:          id,
		Name:        req.Name,
		PriceCents:  req.PriceCents,
		DurationMin: req.DurationMin,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		switch err {
		case repository.ErrServiceNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "service name already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update service failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Delete handles DELETE /v1/admin/services/:id. Services with booked
// appointments cannot be deleted; the client gets a 409 so the admin
// can cancel or wait out the bookings first.
func (h *AdminServiceHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Services.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrServiceNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "service has booked appointments"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete service failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
