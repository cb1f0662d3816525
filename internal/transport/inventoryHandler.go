package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

func (h *InventoryHandler) GetAllEvents(c *gin.Context) {
	events, err := h.inventoryService.GetAllEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *InventoryHandler) GetEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	event, err := h.inventoryService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, entity.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *InventoryHandler) GetVenue(c *gin.Context) {
	venueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue id"})
		return
	}

	venue, err := h.inventoryService.GetVenue(c.Request.Context(), venueID)
	if err != nil {
		if errors.Is(err, entity.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		return
	}

	c.JSON(http.StatusOK, venue)
}

// UpdateCapacity is the conditional decrement endpoint, called by the
// settlement side. A failed predicate is a conflict, not an error.
func (h *InventoryHandler) UpdateCapacity(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	count, err := strconv.ParseInt(c.Param("count"), 10, 64)
	if err != nil || count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket count"})
		return
	}

	applied, remaining, err := h.inventoryService.Decrement(c.Request.Context(), eventID, count)
	if err != nil {
		if errors.Is(err, entity.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		return
	}

	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough capacity", "remaining": remaining})
		return
	}

	c.Status(http.StatusNoContent)
}
