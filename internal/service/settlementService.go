package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/sathwikhbhat/ticket-booking-system/internal/database/postgres"
	"github.com/sathwikhbhat/ticket-booking-system/internal/database/redis"
	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type settlementService struct {
	orderRepo repository.OrderRepository
	cache     redis.InventoryCache
}

func NewSettlementService(orderRepo repository.OrderRepository, cache redis.InventoryCache) SettlementService {
	return &settlementService{
		orderRepo: orderRepo,
		cache:     cache,
	}
}

// Settle processes one ReservationAccepted fact. A nil return means the
// message may be acknowledged; any error leaves it uncommitted for
// redelivery. The dedup check runs before every other side effect.
func (s *settlementService) Settle(ctx context.Context, fact *entity.ReservationAccepted) error {
	order := &entity.Order{
		DedupKey:    fact.RequestID,
		CustomerID:  fact.UserID,
		EventID:     fact.EventID,
		TicketCount: fact.TicketCount,
		TotalPrice:  fact.TotalPrice,
		Status:      entity.OrderStatusPersisted,
	}

	err := s.orderRepo.Create(ctx, order)
	if errors.Is(err, entity.ErrDuplicateReservation) {
		existing, err := s.orderRepo.GetByDedupKey(ctx, fact.RequestID)
		if err != nil {
			return err
		}
		if existing.Status != entity.OrderStatusPersisted {
			logrus.WithFields(logrus.Fields{
				"request_id": fact.RequestID,
				"status":     existing.Status,
			}).Info("duplicate reservation fact absorbed")
			return nil
		}
		// The order exists but its decrement never ran (crash or store
		// outage on a previous delivery); resume at the decrement step.
		order = existing
		logrus.WithFields(logrus.Fields{
			"request_id": fact.RequestID,
			"order_id":   order.ID,
		}).Warn("resuming pending decrement for persisted order")
	} else if err != nil {
		return err
	}

	return s.applyDecrement(ctx, order)
}

func (s *settlementService) applyDecrement(ctx context.Context, order *entity.Order) error {
	applied, remaining, err := s.orderRepo.SettleDecrement(ctx, order.ID, order.EventID, order.TicketCount)
	if errors.Is(err, entity.ErrOrderAlreadySettled) {
		// Another actor (a parallel delivery or the reconcile sweep) won
		// the claim; the decrement already happened exactly once.
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,
			"event_id": order.EventID,
		}).Info("order already settled, absorbing")
		return nil
	}
	if errors.Is(err, entity.ErrEventNotFound) {
		// The event row is gone; nothing left to decrement. Keep the
		// order visible as oversold rather than redelivering forever.
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,
			"event_id": order.EventID,
		}).Error("event missing at settlement, marking order oversold")
		return s.orderRepo.UpdateStatus(ctx, order.ID, entity.OrderStatusOversold)
	}
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.DeleteEvent(ctx, order.EventID); err != nil {
			logrus.Warnf("failed to invalidate event %d cache: %v", order.EventID, err)
		}
	}

	if !applied {
		// Admitted at intake, out of capacity now. The order is kept and
		// surfaced; this is the expected, bounded race of the design.
		logrus.WithFields(logrus.Fields{
			"order_id":  order.ID,
			"event_id":  order.EventID,
			"requested": order.TicketCount,
			"remaining": remaining,
		}).Error("capacity conflict at settlement, order oversold")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"event_id":  order.EventID,
		"remaining": remaining,
	}).Info("order settled")
	return nil
}

// ReconcileStuckOrders resumes orders whose decrement never completed,
// covering a settlement crash between the two writes.
func (s *settlementService) ReconcileStuckOrders(ctx context.Context, grace time.Duration) (int, error) {
	orders, err := s.orderRepo.GetStuckOrders(ctx, time.Now().Add(-grace))
	if err != nil {
		return 0, err
	}

	resumed := 0
	for _, order := range orders {
		if err := s.applyDecrement(ctx, order); err != nil {
			logrus.Errorf("failed to reconcile order %d: %v", order.ID, err)
			continue
		}
		resumed++
	}

	return resumed, nil
}

func (s *settlementService) GetOrderByRequestID(ctx context.Context, requestID string) (*entity.Order, error) {
	return s.orderRepo.GetByDedupKey(ctx, requestID)
}
