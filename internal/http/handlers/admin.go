// Administrative list/delete surface for staff sessions. These are thin
// wrappers around storage; identifiers come through the URL, never parsed
// back out of display strings.
package handlers

import (
	"net/http"
	"strconv"

	"barberbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/customers
func GetCustomers(c *gin.Context) {
	customers, err := (repositories.CustomerRepository{}).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// DELETE /api/admin/customers/:id
func DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_customer_id", "customer id must be a positive integer")
		return
	}
	if err := (repositories.CustomerRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

// GET /api/admin/bookings
func GetBookings(c *gin.Context) {
	bookings, err := (repositories.BookingRepository{}).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// DELETE /api/admin/bookings/:id — administrative cancel, including of
// confirmed bookings; outside the reservation state machine.
func DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_booking_id", "booking id must be a positive integer")
		return
	}
	if err := (repositories.BookingRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// GET /api/admin/staff
func GetStaff(c *gin.Context) {
	staff, err := (repositories.StaffRepository{}).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}
