package routes

import (
	"net/http"
	"time"

	"campusporter/handlers"
	"campusporter/middleware"
	"campusporter/models"
	"campusporter/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRequestRoutes registers the request lifecycle endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	customer := middleware.ActorMiddleware(models.RoleCustomer, hb.DefaultCustomerName)
	porter := middleware.ActorMiddleware(models.RolePorter, hb.DefaultPorterName)

	api := r.Group("/api/requests")
	{
		api.GET("/:id", hb.GetRequest)

		// Customer actions
		api.POST("", customer, hb.CreateRequest)
		api.POST("/:id/cancel", customer, hb.CancelRequest)

		// Porter actions
		api.POST("/:id/accept", porter, hb.AcceptRequest)
		api.PUT("/:id/status", porter, hb.UpdateStatus)
		api.POST("/:id/decline", porter, hb.DeclineRequest)
	}
}

// RegisterCustomerRoutes registers the customer dashboard views.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/customer")
	{
		api.Use(middleware.ActorMiddleware(models.RoleCustomer, hb.DefaultCustomerName))
		api.GET("/me", hb.GetProfile)
		api.GET("/requests/active", hb.ActiveForCustomer)
		api.GET("/requests/history", hb.HistoryForCustomer)
	}
}

// RegisterPorterRoutes registers the porter dashboard views.
func RegisterPorterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/porter")
	{
		api.Use(middleware.ActorMiddleware(models.RolePorter, hb.DefaultPorterName))
		api.GET("/me", hb.GetProfile)
		api.GET("/requests/active", hb.ActiveForPorter)
		api.GET("/requests/available", hb.AvailableForPorter)
	}
}

// RegisterNotificationRoutes registers the notification bell and the live event stream.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/locations", hb.GetLocations)
		api.GET("/notifications", hb.GetNotifications)
		api.POST("/notifications/read", hb.MarkAllRead)
		api.GET("/events", hb.StreamEvents)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm Campus Porter",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.UserNameHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterRequestRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterPorterRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
