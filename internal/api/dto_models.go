package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels-backend-go/internal/core"
	"rentwheels-backend-go/internal/middleware"
	"rentwheels-backend-go/internal/models"
)

// ErrorResponse is the wire shape for every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SuccessResponse is a generic structure for message-style success replies.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RoleResponse carries the result of a role lookup.
type RoleResponse struct {
	Role string `json:"role"`
}

// requireCaller fetches the verified caller identity from the context,
// replying 401 when the auth middleware did not attach one.
func requireCaller(c *gin.Context) (models.Caller, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "caller identity not found in request context"})
		return models.Caller{}, false
	}
	return caller, true
}

// respondBindingError converts a ShouldBindJSON failure into a 400 reply.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request payload: " + err.Error()})
}

// respondServiceError maps service-layer sentinel errors to HTTP status
// codes. Anything unrecognized is logged server-side and reported as a
// generic 500 so internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrCarNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: core.ErrCarNotFound.Error()})
	case errors.Is(err, core.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: core.ErrBookingNotFound.Error()})
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: core.ErrUserNotFound.Error()})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: core.ErrForbidden.Error()})
	case errors.Is(err, core.ErrCarAlreadyBooked):
		c.JSON(http.StatusConflict, ErrorResponse{Message: core.ErrCarAlreadyBooked.Error()})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "an unexpected internal server error occurred"})
	}
}
