package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/salon-booking/internal/booking"
	"github.com/iliyamo/salon-booking/internal/model"
	"github.com/iliyamo/salon-booking/internal/queue"
	"github.com/iliyamo/salon-booking/internal/repository"
	publisher "github.com/iliyamo/salon-booking/internal/service"
)

// BookingHandler serves appointment booking, cancellation, listing and
// slot suggestion. All methods assume JWT authentication has already
// populated the context; they may return 401 if the user id cannot be
// extracted.
type BookingHandler struct {
	Appointments *repository.AppointmentRepo
	Services     *repository.ServiceRepo
}

func NewBookingHandler(appts *repository.AppointmentRepo, svcs *repository.ServiceRepo) *BookingHandler {
	if appts == nil || svcs == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Appointments: appts, Services: svcs}
}

type bookReq struct {
	Service string `json:"service"` // service name as shown in the catalog
	Date    string `json:"date"`    // YYYY-MM-DD
	Time    string `json:"time"`    // HH:MM
}
type bookNextReq struct {
	Service string `json:"service"`
}

type bookResp struct {
	AppointmentID uint64 `json:"appointment_id"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Duplicate     bool   `json:"duplicate"`
	LoyaltyPoints int64  `json:"loyalty_points"`
}

// Book handles POST /v1/appointments. The slot must be a valid date and
// a time inside business hours. Booking an identical slot twice is an
// idempotent success: the existing appointment is reported with
// duplicate=true and no extra points are awarded.
func (h *BookingHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Service == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service is required"})
	}
	if !booking.ValidDate(req.Date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if !booking.WithinBusinessHours(req.Time) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be between 09:00 and 18:30"})
	}
	return h.book(c, userID, req.Service, booking.Slot{Date: req.Date, Time: req.Time})
}

// BookNextAvailable handles POST /v1/appointments/next-available. The
// slot is computed from the clock, so it is compliant by construction.
func (h *BookingHandler) BookNextAvailable(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookNextReq
	if err := c.Bind(&req); err != nil || req.Service == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service is required"})
	}
	return h.book(c, userID, req.Service, booking.SuggestSlot(time.Now()))
}

// SuggestSlot handles GET /v1/appointments/suggest and returns the next
// bookable half-hour slot without booking anything.
func (h *BookingHandler) SuggestSlot(c echo.Context) error {
	return c.JSON(http.StatusOK, booking.SuggestSlot(time.Now()))
}

func (h *BookingHandler) book(c echo.Context, userID uint64, serviceName string, slot booking.Slot) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	svc, err := h.Services.GetByName(ctx, serviceName)
	if err != nil {
		if err == repository.ErrServiceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	res, err := h.Appointments.Book(ctx, userID, svc.ID, slot.Date, slot.Time)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	if !res.Duplicate {
		// Publish best-effort; a broker outage must not fail the booking.
		_ = publisher.PublishAppointmentBooked(ctx, queue.AppointmentBookedEvent{
			AppointmentID: res.AppointmentID,
			UserID:        userID,
			ServiceName:   svc.Name,
			Category:      svc.Category,
			PriceCents:    svc.PriceCents,
			Date:          slot.Date,
			Time:          slot.Time,
			PointsAwarded: model.PointsPerBooking,
			BookedAt:      time.Now().UTC().Format(time.RFC3339),
		})
	}

	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	return c.JSON(status, bookResp{
		AppointmentID: res.AppointmentID,
		Service:       svc.Name,
		Date:          slot.Date,
		Time:          slot.Time,
		Duplicate:     res.Duplicate,
		LoyaltyPoints: res.Points,
	})
}

// Cancel handles DELETE /v1/appointments/:id. Only the owner (or an
// admin) may cancel. Repeat cancellation is a no-op on both status and
// points.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	apptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || apptID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Appointments.Cancel(ctx, apptID, userID, isAdmin(c))
	if err != nil {
		switch err {
		case repository.ErrAppointmentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cancelled":      res.Cancelled,
		"loyalty_points": res.Points,
	})
}

type appointmentItem struct {
	ID      uint64 `json:"id"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
}

// List handles GET /v1/appointments. Query params status, range and
// sort select the display subset; unknown values fall back to the
// defaults. An empty list after filtering is a normal response.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	sel := booking.DefaultSelection()
	if v := c.QueryParam("status"); v != "" {
		sel.Status = v
	}
	if v := c.QueryParam("range"); v != "" {
		sel.Range = v
	}
	if v := c.QueryParam("sort"); v != "" {
		sel.Sort = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	appts, err := h.Appointments.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	filtered := booking.Apply(appts, sel, time.Now())
	items := make([]appointmentItem, 0, len(filtered))
	for _, a := range filtered {
		items = append(items, appointmentItem{
			ID: a.ID, Service: a.ServiceName, Date: a.Date, Time: a.Time, Status: a.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":        len(appts),
		"count":        len(items),
		"appointments": items,
	})
}
