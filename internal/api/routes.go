package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentwheels-backend-go/internal/core"
)

// SetupRoutes configures all application routes. Global middleware
// (logging, recovery, CORS) is expected to be applied to the router before
// this is called, typically in main. verifyToken is the authentication
// middleware handler; injecting it here keeps route wiring testable with a
// stub in place of Firebase.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	verifyToken gin.HandlerFunc,
	userService core.UserService,
	carService core.CarService,
	bookingService core.BookingService,
	dashboardService core.DashboardService,
) {
	userHandler := NewUserHandler(userService)
	carHandler := NewCarHandler(carService)
	bookingHandler := NewBookingHandler(bookingService)
	dashboardHandler := NewDashboardHandler(dashboardService)

	// Liveness endpoints. The root route keeps the original plain-text
	// contract; /health is the JSON variant.
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "car rental server is running")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "car rental backend is healthy"})
	})

	// User registration, role lookup and profile upsert. All require auth.
	usersGroup := router.Group("/users", verifyToken)
	{
		usersGroup.POST("", userHandler.RegisterUser)
		usersGroup.GET("/role/:email", userHandler.GetRole)
		usersGroup.PUT("/profile", userHandler.UpdateProfile)
	}

	// Car listings: public reads, owner-only mutations.
	carsGroup := router.Group("/cars")
	{
		carsGroup.GET("", carHandler.ListCars)
		carsGroup.GET("/:carId", carHandler.GetCar)
		carsGroup.POST("", verifyToken, carHandler.CreateCar)
		carsGroup.PUT("/:carId", verifyToken, carHandler.UpdateCar)
		carsGroup.DELETE("/:carId", verifyToken, carHandler.DeleteCar)
	}

	// Bookings: public read by id, authenticated create/cancel/list-mine.
	bookingsGroup := router.Group("/bookings")
	{
		bookingsGroup.GET("/:bookingId", bookingHandler.GetBooking)
		bookingsGroup.POST("", verifyToken, bookingHandler.CreateBooking)
		bookingsGroup.DELETE("/:bookingId", verifyToken, bookingHandler.CancelBooking)
	}
	router.GET("/my-bookings", verifyToken, bookingHandler.ListMyBookings)

	// Read-only dashboard aggregations.
	dashboardGroup := router.Group("/dashboard", verifyToken)
	{
		dashboardGroup.GET("/stats", dashboardHandler.Stats)
		dashboardGroup.GET("/car-availability", dashboardHandler.CarAvailability)
		dashboardGroup.GET("/bookings-over-time", dashboardHandler.BookingsOverTime)
		dashboardGroup.GET("/recent-bookings", dashboardHandler.RecentBookings)
	}

	// Legacy read-only alias kept for older clients.
	legacyGroup := router.Group("/api")
	{
		legacyGroup.GET("/cards", carHandler.ListCars)
		legacyGroup.GET("/cards/:carId", carHandler.GetCar)
	}

	logger.Info("API routes configured successfully.")
}
