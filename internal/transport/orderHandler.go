package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

// GetOrder exposes settlement outcomes by request id, which is how an
// operator (or a curious client) learns that an admitted reservation
// ended up oversold.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	requestID := c.Param("request_id")

	order, err := h.settlementService.GetOrderByRequestID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		return
	}

	c.JSON(http.StatusOK, order)
}
