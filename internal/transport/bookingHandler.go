package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req entity.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	response, err := h.bookingService.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, entity.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, entity.ErrNotEnoughCapacity):
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough capacity"})
		case errors.Is(err, entity.ErrPublishFailed):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Booking could not be accepted, try again"})
		default:
			// Anything else on this path is the store misbehaving.
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}
