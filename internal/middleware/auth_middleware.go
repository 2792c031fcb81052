package middleware

import (
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"rentwheels-backend-go/internal/models"
)

// callerContextKey is the gin context key under which the verified caller
// identity is stored.
const callerContextKey = "caller"

// errorResponse is a local definition for sending standardized error
// messages. It mirrors api.ErrorResponse to avoid an import cycle with
// internal/api.
type errorResponse struct {
	Message string `json:"message"`
}

// AuthMiddleware provides Gin middleware for Firebase token authentication.
type AuthMiddleware struct {
	firebaseAuthClient *auth.Client
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
// It panics when the auth client is nil: that is a programmer error during
// setup and the application cannot secure routes without it.
func NewAuthMiddleware(fbAuthClient *auth.Client) *AuthMiddleware {
	if fbAuthClient == nil {
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{firebaseAuthClient: fbAuthClient}
}

// VerifyToken verifies the Firebase ID token in the Authorization header
// and attaches the caller identity to the Gin context. Requests without a
// valid bearer token are rejected with 401.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "Authorization header format must be 'Bearer {token}'"})
			return
		}
		idToken := parts[1]

		token, err := m.firebaseAuthClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			// Specific verification failures stay server-side; the client
			// gets a generic message.
			log.Printf("AuthMiddleware: Error verifying Firebase ID token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "Invalid or expired authentication token"})
			return
		}

		caller := models.Caller{UID: token.UID}
		if email, ok := token.Claims["email"].(string); ok {
			caller.Email = email
		}
		if name, ok := token.Claims["name"].(string); ok {
			caller.Name = name
		}

		// Every ownership rule in the system compares caller email against
		// a stored email field, so a token without an email claim cannot be
		// authorized for anything.
		if caller.Email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "Authentication token is missing an email claim"})
			return
		}

		SetCaller(c, caller)
		c.Next()
	}
}

// SetCaller stores the caller identity in the Gin context. Exposed so that
// tests can install a stub in place of VerifyToken.
func SetCaller(c *gin.Context, caller models.Caller) {
	c.Set(callerContextKey, caller)
}

// CallerFromContext returns the caller identity attached by VerifyToken.
func CallerFromContext(c *gin.Context) (models.Caller, bool) {
	v, exists := c.Get(callerContextKey)
	if !exists {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}
