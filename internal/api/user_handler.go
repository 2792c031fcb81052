package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels-backend-go/internal/core"
	"rentwheels-backend-go/internal/models"
)

// UserHandler handles user registration, role lookup and profile endpoints.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// RegisterUser handles POST /users.
// Called by the client after a Firebase login/signup to ensure a backend
// user record exists. Idempotent: repeated calls for the same identity
// report "already exists" and store nothing new.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	user, created, err := h.userService.EnsureUser(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, SuccessResponse{Message: "user created", Data: user})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "user already exists", Data: user})
}

// GetRole handles GET /users/role/:email.
// Callers may only look up their own role; anything else is Forbidden
// regardless of whether the other user exists.
func (h *UserHandler) GetRole(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "email is required"})
		return
	}

	role, err := h.userService.GetRole(c.Request.Context(), caller, email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, RoleResponse{Role: role})
}

// UpdateProfile handles PUT /users/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.UpsertProfile(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
