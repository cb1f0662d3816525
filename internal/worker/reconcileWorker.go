package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sathwikhbhat/ticket-booking-system/internal/service"
)

// OrderReconcileWorker sweeps orders stuck in the persisted state: a crash
// between the order insert and the capacity decrement leaves such a row,
// and this worker resumes the decrement for it.
type OrderReconcileWorker struct {
	settlementService service.SettlementService
	interval          time.Duration
	grace             time.Duration
}

func NewOrderReconcileWorker(settlementService service.SettlementService, interval, grace time.Duration) *OrderReconcileWorker {
	return &OrderReconcileWorker{
		settlementService: settlementService,
		interval:          interval,
		grace:             grace,
	}
}

func (w *OrderReconcileWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Order reconcile worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Order reconcile worker stopped")
			return
		case <-ticker.C:
			resumed, err := w.settlementService.ReconcileStuckOrders(ctx, w.grace)
			if err != nil {
				logrus.Errorf("Failed to reconcile stuck orders: %v", err)
				continue
			}
			if resumed > 0 {
				logrus.Infof("Reconciled %d stuck orders", resumed)
			}
		}
	}
}
