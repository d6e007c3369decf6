package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/slots?date=YYYY-MM-DD
func GetAvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "date query parameter is required")
		return
	}

	slots, err := calendarService().AvailableSlots(date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}
