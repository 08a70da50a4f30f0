package analytics

import (
	"strconv"

	"grants-backend/internal/pkg/response"
	"grants-backend/internal/tracker"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *tracker.Service
}

// GET /api/v1/analytics/pipeline
func (h *Handlers) Pipeline(c *fiber.Ctx) error {
	summary, err := h.Service.Pipeline(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Pipeline summary", summary, nil)
}

// GET /api/v1/analytics/reporting-calendar?months=3
func (h *Handlers) ReportingCalendar(c *fiber.Ctx) error {
	months := queryInt(c, "months", 3)
	entries, err := h.Service.ReportingCalendar(c.Context(), months)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Reporting calendar", entries, fiber.Map{"months": months, "count": len(entries)})
}

// GET /api/v1/analytics/success-rate?funder=
func (h *Handlers) SuccessRate(c *fiber.Ctx) error {
	result, err := h.Service.SuccessRate(c.Context(), c.Query("funder"))
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Success rate", result, nil)
}

// GET /api/v1/analytics/upcoming-deadlines?days=30
func (h *Handlers) UpcomingDeadlines(c *fiber.Ctx) error {
	days := queryInt(c, "days", 30)
	grants, err := h.Service.UpcomingDeadlines(c.Context(), days)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Upcoming deadlines", grants, fiber.Map{"days": days, "count": len(grants)})
}

// GET /api/v1/analytics/funding-by-type
func (h *Handlers) FundingByType(c *fiber.Ctx) error {
	totals, err := h.Service.FundingTotalsByType(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Funding totals by type", totals, nil)
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return def
}
