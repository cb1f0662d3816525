package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
	"github.com/sathwikhbhat/ticket-booking-system/internal/pkg/kafka"
	"github.com/sathwikhbhat/ticket-booking-system/internal/service"
)

type SettlementWorker struct {
	consumer          kafka.Consumer
	settlementService service.SettlementService
}

func NewSettlementWorker(consumer kafka.Consumer, settlementService service.SettlementService) *SettlementWorker {
	return &SettlementWorker{
		consumer:          consumer,
		settlementService: settlementService,
	}
}

// Start consumes reservation facts until the context is cancelled. Offsets
// are committed only after Settle reports the fact handled; on any settle
// error the message stays uncommitted and the broker redelivers it, which
// is the worker's only retry mechanism.
func (w *SettlementWorker) Start(ctx context.Context) {
	logrus.Info("Settlement consumer started. Waiting for messages...")

	for {
		msg, err := w.consumer.Fetch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logrus.Info("Context done, exiting Kafka read loop")
				return
			}
			logrus.Errorf("Error reading message from Kafka: %v", err)
			continue
		}

		logrus.Infof("Received message from topic %s [partition %d, offset %d]",
			msg.Topic, msg.Partition, msg.Offset)

		var fact entity.ReservationAccepted
		if err := json.Unmarshal(msg.Value, &fact); err != nil {
			// A malformed fact will never parse on redelivery either.
			logrus.Errorf("Failed to parse reservation fact, skipping: %v", err)
			if err := w.consumer.Commit(ctx, msg); err != nil {
				logrus.Errorf("Failed to commit offset: %v", err)
			}
			continue
		}

		if err := w.settlementService.Settle(ctx, &fact); err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": fact.RequestID,
				"event_id":   fact.EventID,
			}).Errorf("Settlement failed, leaving message for redelivery: %v", err)
			continue
		}

		if err := w.consumer.Commit(ctx, msg); err != nil {
			logrus.Errorf("Failed to commit offset: %v", err)
		}
	}
}
