package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels-backend-go/internal/core"
	"rentwheels-backend-go/internal/models"
)

// DashboardHandler serves the read-only aggregation endpoints. All of them
// require authentication but perform no ownership checks: the numbers are
// global, not per-caller.
type DashboardHandler struct {
	dashboardService core.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds core.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CarAvailability handles GET /dashboard/car-availability.
func (h *DashboardHandler) CarAvailability(c *gin.Context) {
	breakdown, err := h.dashboardService.CarAvailability(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// BookingsOverTime handles GET /dashboard/bookings-over-time.
func (h *DashboardHandler) BookingsOverTime(c *gin.Context) {
	series, err := h.dashboardService.BookingsOverTime(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if series == nil {
		series = []models.BookingsByDay{}
	}
	c.JSON(http.StatusOK, series)
}

// RecentBookings handles GET /dashboard/recent-bookings.
func (h *DashboardHandler) RecentBookings(c *gin.Context) {
	bookings, err := h.dashboardService.RecentBookings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}
