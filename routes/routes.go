package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/controllers"
	"marketplace-backend/middleware"
	"marketplace-backend/services"
)

// Controllers bundles everything the router wires up.
type Controllers struct {
	Auth          *controllers.AuthController
	Cart          *controllers.CartController
	Services      *controllers.ServiceController
	Orders        *controllers.OrderController
	Developers    *controllers.DeveloperController
	Reviews       *controllers.ReviewController
	Messages      *controllers.MessageController
	Notifications *controllers.NotificationController
}

// Register wires all routes. Public routes run behind OptionalAuth so a
// failed session resolution degrades to anonymous browsing; protected routes
// run behind RequireAuth.
func Register(r *gin.Engine, sessions *services.SessionService, ctrl Controllers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware())
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
		auth.POST("/logout", middleware.OptionalAuth(sessions), ctrl.Auth.Logout)
		auth.GET("/session", middleware.OptionalAuth(sessions), ctrl.Auth.Session)
	}

	cart := r.Group("/cart")
	cart.Use(middleware.RequireAuth(sessions))
	{
		cart.GET("", ctrl.Cart.GetCart)
		cart.POST("/items", ctrl.Cart.AddItem)
		cart.PATCH("/items/:service_id", ctrl.Cart.SetQuantity)
		cart.DELETE("/items/:service_id", ctrl.Cart.RemoveItem)
		cart.DELETE("", ctrl.Cart.ClearCart)
		cart.POST("/checkout", ctrl.Cart.Checkout)
	}

	svc := r.Group("/services")
	{
		svc.GET("", middleware.OptionalAuth(sessions), ctrl.Services.List)
		svc.GET("/uploads/presign", middleware.RequireAuth(sessions), middleware.RequireDeveloper(), ctrl.Services.PresignUpload)
		svc.GET("/:id", middleware.OptionalAuth(sessions), ctrl.Services.Get)
		svc.POST("", middleware.RequireAuth(sessions), middleware.RequireDeveloper(), ctrl.Services.Create)
		svc.PUT("/:id", middleware.RequireAuth(sessions), middleware.RequireDeveloper(), ctrl.Services.Update)
		svc.DELETE("/:id", middleware.RequireAuth(sessions), middleware.RequireDeveloper(), ctrl.Services.Delete)
	}

	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth(sessions))
	{
		orders.GET("", ctrl.Orders.History)
	}

	developers := r.Group("/developers")
	{
		developers.GET("", ctrl.Developers.List)
		developers.PUT("/me", middleware.RequireAuth(sessions), middleware.RequireDeveloper(), ctrl.Developers.UpdateProfile)
		developers.GET("/me/messages", middleware.RequireAuth(sessions), middleware.RequireDeveloper(), ctrl.Developers.Inbox)
		developers.GET("/:id", ctrl.Developers.Get)
		developers.GET("/:id/reviews", ctrl.Reviews.List)
		developers.POST("/:id/reviews", middleware.RequireAuth(sessions), ctrl.Reviews.Submit)
	}

	r.POST("/messages", middleware.OptionalAuth(sessions), ctrl.Messages.Send)

	notifications := r.Group("/notifications")
	notifications.Use(middleware.RequireAuth(sessions))
	{
		notifications.GET("/current", ctrl.Notifications.Current)
		notifications.DELETE("/current", ctrl.Notifications.Dismiss)
	}
}
