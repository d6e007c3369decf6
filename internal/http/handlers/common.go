package handlers

import (
	"net/http"

	intconfig "barberbook/internal/config"
	"barberbook/internal/http/middleware"
	"barberbook/internal/services"

	"github.com/gin-gonic/gin"
)

var cfg intconfig.Env

// Configure provides handler-level settings once at router setup.
func Configure(env intconfig.Env) {
	cfg = env
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "bad_request", "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Iterations: cfg.KDFIterations,
		RequestID:  middleware.GetRequestID(c),
	}
}

func calendarService() services.CalendarService {
	return services.CalendarService{
		OpenHour:  cfg.OpenHour,
		CloseHour: cfg.CloseHour,
	}
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Calendar: calendarService(),
		Payments: services.PaymentService{
			Timeout:   cfg.PaymentTimeout,
			RequestID: middleware.GetRequestID(c),
		},
		HoldTTL:   cfg.HoldTTL,
		RequestID: middleware.GetRequestID(c),
	}
}
