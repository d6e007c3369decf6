package handlers

import (
	"errors"
	"net/http"

	"barberbook/internal/domain"
	"barberbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Business-rule
// rejections each carry a distinct code so callers can react specifically.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSlotUnavailable):
		respondError(c, http.StatusConflict, "slot_unavailable", err.Error())
	case errors.Is(err, domain.ErrHoldExpired):
		respondError(c, http.StatusGone, "hold_expired", err.Error())
	case errors.Is(err, domain.ErrPaymentRejected):
		respondError(c, http.StatusPaymentRequired, "payment_rejected", err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		respondError(c, http.StatusConflict, "duplicate_email", err.Error())
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
