package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	repository "github.com/sathwikhbhat/ticket-booking-system/internal/database/postgres"
	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
	"github.com/sathwikhbhat/ticket-booking-system/internal/pkg/kafka"
)

type bookingService struct {
	customerRepo repository.CustomerRepository
	inventory    InventoryService
	producer     kafka.Producer
}

func NewBookingService(
	customerRepo repository.CustomerRepository,
	inventory InventoryService,
	producer kafka.Producer,
) BookingService {
	return &bookingService{
		customerRepo: customerRepo,
		inventory:    inventory,
		producer:     producer,
	}
}

// Submit admits a reservation: it validates the customer, asks the capacity
// gate for a quote, prices the booking once, and publishes the fact. The
// returned response acknowledges admission only; settlement runs later.
func (s *bookingService) Submit(ctx context.Context, req *entity.BookingRequest) (*entity.BookingResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	quote, err := s.inventory.CheckAndQuote(ctx, req.EventID, req.TicketCount)
	if err != nil {
		return nil, err
	}
	if !quote.Approved {
		logrus.WithFields(logrus.Fields{
			"event_id":  req.EventID,
			"requested": req.TicketCount,
			"remaining": quote.Remaining,
		}).Info("booking rejected: not enough capacity")
		return nil, entity.ErrNotEnoughCapacity
	}

	// Price is fixed here; settlement never recomputes it.
	totalPrice := quote.UnitPrice * float64(req.TicketCount)

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	fact := &entity.ReservationAccepted{
		RequestID:   requestID,
		UserID:      customer.ID,
		EventID:     req.EventID,
		TicketCount: req.TicketCount,
		TotalPrice:  totalPrice,
	}

	if err := s.producer.PublishReservation(ctx, fact); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"request_id":   requestID,
		"user_id":      customer.ID,
		"event_id":     req.EventID,
		"ticket_count": req.TicketCount,
		"total_price":  totalPrice,
	}).Info("booking sent to Kafka")

	return &entity.BookingResponse{
		UserID:      customer.ID,
		EventID:     req.EventID,
		TicketCount: req.TicketCount,
		TotalPrice:  totalPrice,
		RequestID:   requestID,
	}, nil
}
