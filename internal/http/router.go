package api

import (
	"log"
	stdhttp "net/http"

	intconfig "barberbook/internal/config"
	h "barberbook/internal/http/handlers"
	"barberbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/slots", h.GetAvailableSlots)
		api.GET("/haircuts", h.GetHaircuts)

		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/staff-login", h.StaffLogin)
		auth.POST("/change-password", middleware.RequireAuth(secret), h.ChangePassword)

		bookings := api.Group("/bookings", middleware.RequireAuth(secret))
		bookings.POST("/hold", h.HoldSlot)
		bookings.POST("/:token/confirm", h.ConfirmBooking)
		bookings.DELETE("/:token", h.CancelHold)
		bookings.GET("/:id/receipt", h.GetBookingReceipt)

		admin := api.Group("/admin", middleware.RequireAuth(secret), middleware.RequireStaff())
		admin.GET("/customers", h.GetCustomers)
		admin.DELETE("/customers/:id", h.DeleteCustomer)
		admin.GET("/bookings", h.GetBookings)
		admin.DELETE("/bookings/:id", h.DeleteBooking)
		admin.GET("/staff", h.GetStaff)
		admin.POST("/haircuts", h.CreateHaircut)
		admin.PUT("/haircuts/:id", h.UpdateHaircut)
		admin.DELETE("/haircuts/:id", h.DeleteHaircut)
	}

	return r
}
