package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels-backend-go/internal/core"
	"rentwheels-backend-go/internal/models"
)

// CarHandler handles API endpoints related to car listings.
type CarHandler struct {
	carService core.CarService
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(cs core.CarService) *CarHandler {
	return &CarHandler{carService: cs}
}

// CreateCar handles POST /cars. The caller becomes the owner.
func (h *CarHandler) CreateCar(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req models.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	car, err := h.carService.CreateCar(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

// ListCars handles GET /cars (and the legacy GET /api/cards alias).
// Public; supports an optional ?q= case-insensitive substring filter on
// the car name.
func (h *CarHandler) ListCars(c *gin.Context) {
	cars, err := h.carService.ListCars(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}
	c.JSON(http.StatusOK, cars)
}

// GetCar handles GET /cars/:carId (and the legacy GET /api/cards/:carId alias).
func (h *CarHandler) GetCar(c *gin.Context) {
	carID := c.Param("carId")
	if carID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "car ID is required"})
		return
	}

	car, err := h.carService.GetCar(c.Request.Context(), carID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// UpdateCar handles PUT /cars/:carId. Owner-only.
func (h *CarHandler) UpdateCar(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	carID := c.Param("carId")
	if carID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "car ID is required"})
		return
	}

	var req models.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	car, err := h.carService.UpdateCar(c.Request.Context(), caller, carID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// DeleteCar handles DELETE /cars/:carId. Owner-only.
func (h *CarHandler) DeleteCar(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	carID := c.Param("carId")
	if carID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "car ID is required"})
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), caller, carID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "car deleted"})
}
