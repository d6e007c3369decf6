package handlers

import (
	"net/http"
	"strconv"

	"barberbook/internal/http/middleware"
	"barberbook/internal/repositories"
	"barberbook/internal/services"

	"github.com/gin-gonic/gin"
)

type holdRequest struct {
	Date string `json:"date"`
	Slot string `json:"slot"`
}

// POST /api/bookings/hold
func HoldSlot(c *gin.Context) {
	var req holdRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).Hold(req.Date, req.Slot, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":    booking,
		"hold_token": booking.HoldToken,
		"expires_at": booking.ExpiresAt,
	})
}

type confirmRequest struct {
	HaircutID  int64  `json:"haircut_id"`
	CardNumber string `json:"card_number"`
	CVC        string `json:"cvc"`
	Expiry     string `json:"expiry"`
}

// POST /api/bookings/:token/confirm
func ConfirmBooking(c *gin.Context) {
	var req confirmRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	card := services.Card{Number: req.CardNumber, CVC: req.CVC, Expiry: req.Expiry}
	booking, err := bookingService(c).Confirm(c.Request.Context(), c.Param("token"), req.HaircutID, card)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "booking confirmed",
		"booking": booking,
	})
}

// DELETE /api/bookings/:token
func CancelHold(c *gin.Context) {
	if err := bookingService(c).Cancel(c.Param("token")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hold cancelled"})
}

// GET /api/bookings/:id/receipt
func GetBookingReceipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_booking_id", "booking id must be a positive integer")
		return
	}

	// Customers may only fetch their own receipt; staff may fetch any.
	booking, err := (repositories.BookingRepository{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if middleware.GetRole(c) != middleware.RoleStaff && booking.CustomerID != middleware.GetUserID(c) {
		respondError(c, http.StatusForbidden, "forbidden", "not your booking")
		return
	}

	svc := services.ReceiptService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.Generate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
