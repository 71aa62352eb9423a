package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/salon-booking/internal/model"
	"github.com/iliyamo/salon-booking/internal/repository"
)

// CatalogHandler exposes the public service catalog and per-user
// recommendations.
type CatalogHandler struct {
	Services        *repository.ServiceRepo
	Recommendations *repository.RecommendationRepo
}

func NewCatalogHandler(svcs *repository.ServiceRepo, recs *repository.RecommendationRepo) *CatalogHandler {
	if svcs == nil || recs == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Services: svcs, Recommendations: recs}
}

type serviceItem struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	PriceCents  uint64  `json:"price_cents"`
	DurationMin uint32  `json:"duration_min"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func toServiceItems(svcs []model.Service) []serviceItem {
	out := make([]serviceItem, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, serviceItem{
			ID:          s.ID,
			Name:        s.Name,
			Price:       float64(s.PriceCents) / 100.0,
			PriceCents:  s.PriceCents,
			DurationMin: s.DurationMin,
			Description: s.Description,
			Category:    s.Category,
		})
	}
	return out
}

// ListServices handles GET /v1/services: the full catalog ordered by
// category then name. Sits behind the response cache in the router.
func (h *CatalogHandler) ListServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	svcs, err := h.Services.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"services": toServiceItems(svcs)})
}

// Recommend handles GET /v1/recommendations for the current user.
// Failures inside the recommendation queries degrade to the popularity
// list, so the endpoint only errors when even the fallback is
// unreachable.
func (h *CatalogHandler) Recommend(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Recommendations.Recommend(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"recommendations": toServiceItems(recs)})
}
