package transport

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sathwikhbhat/ticket-booking-system/internal/transport/middleware"
)

func InitRoutes(bookingHandler *BookingHandler, inventoryHandler *InventoryHandler, orderHandler *OrderHandler) *gin.Engine {

	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	api := router.Group("/api/v1")
	{
		api.POST("/booking", bookingHandler.CreateBooking)

		inventory := api.Group("/inventory")
		{
			inventory.GET("/events", inventoryHandler.GetAllEvents)
			inventory.GET("/event/:id", inventoryHandler.GetEvent)
			inventory.GET("/venue/:id", inventoryHandler.GetVenue)
			inventory.PUT("/event/:id/capacity/:count", inventoryHandler.UpdateCapacity)
		}

		api.GET("/orders/:request_id", orderHandler.GetOrder)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "ticket-booking-system",
		})
	})

	return router
}
