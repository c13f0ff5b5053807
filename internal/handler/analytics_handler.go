package handler

import (
	"strconv"

	"go-phoneshop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// GetSales lists sale history, optionally filtered by model name or IMEI.
// GET /api/v1/sales?q=...
func (h *AnalyticsHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetSales(ownerID(c), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

// GetTotals returns all-time sale and profit sums.
// GET /api/v1/analytics/totals
func (h *AnalyticsHandler) GetTotals(c *fiber.Ctx) error {
	totals, err := h.service.GetTotals(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(totals)
}

// GetDailySales returns one calendar day's sales and totals.
// GET /api/v1/analytics/daily?day=2024-01-01 (defaults to today)
func (h *AnalyticsHandler) GetDailySales(c *fiber.Ctx) error {
	sales, totals, err := h.service.GetDailySales(ownerID(c), c.Query("day"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sales": sales, "totals": totals})
}

// GetSalesByDay returns the per-day chart buckets over all history.
// GET /api/v1/analytics/by-day
func (h *AnalyticsHandler) GetSalesByDay(c *fiber.Ctx) error {
	buckets, err := h.service.GetSalesByDay(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(buckets)
}

// GetSalesChart returns SQL-aggregated per-day data for a recent window.
// GET /api/v1/analytics/chart?days=7
func (h *AnalyticsHandler) GetSalesChart(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetSalesChart(ownerID(c), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"period": days, "data": data})
}

// GetDashboardStats returns the overview block.
// GET /api/v1/analytics/stats
func (h *AnalyticsHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// ExportSales downloads the sale history as CSV or XLSX.
// GET /api/v1/sales/export?format=csv|xlsx
func (h *AnalyticsHandler) ExportSales(c *fiber.Ctx) error {
	format := c.Query("format", "csv")

	switch format {
	case "csv":
		data, err := h.service.ExportCSV(ownerID(c))
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales.csv"`)
		return c.Send(data)

	case "xlsx":
		data, err := h.service.ExportXLSX(ownerID(c))
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales.xlsx"`)
		return c.Send(data)

	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown export format: " + format})
	}
}
