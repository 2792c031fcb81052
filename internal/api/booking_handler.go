package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels-backend-go/internal/core"
	"rentwheels-backend-go/internal/models"
)

// BookingHandler handles API endpoints related to bookings.
type BookingHandler struct {
	bookingService core.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs core.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// CreateBooking handles POST /bookings. Booking an Available car flips its
// status to Booked as part of the same transaction.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBooking handles GET /bookings/:bookingId. Public read.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "booking ID is required"})
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListMyBookings handles GET /my-bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListMyBookings(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBooking handles DELETE /bookings/:bookingId. Booking owner only;
// the referenced car reverts to Available.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "booking ID is required"})
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), caller, bookingID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "booking cancelled"})
}
