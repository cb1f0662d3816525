package transport

import (
	"github.com/sathwikhbhat/ticket-booking-system/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

type OrderHandler struct {
	settlementService service.SettlementService
}

func NewOrderHandler(settlementService service.SettlementService) *OrderHandler {
	return &OrderHandler{settlementService: settlementService}
}
