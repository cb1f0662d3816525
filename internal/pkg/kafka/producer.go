package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type Producer interface {
	PublishReservation(ctx context.Context, fact *entity.ReservationAccepted) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) Producer {
	writer := &kafka.Writer{
		Addr:  kafka.TCP(brokers...),
		Topic: topic,
		// Hash balancer keeps all facts for one event on one partition,
		// which is what gives settlement per-event ordering.
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		logrus.Warnf("Kafka connection check failed: %v", err)
		return &kafkaProducer{writer: writer}
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
	}

	if err = conn.CreateTopics(topicConfigs...); err != nil {
		logrus.Infof("Could not create topic (might already exist): %v", err)
	}

	logrus.Infof("Kafka producer configured for brokers: %s", strings.Join(brokers, ","))
	return &kafkaProducer{writer: writer}
}

// PublishReservation makes exactly one publish attempt; the error is
// surfaced to the caller, who may retry the whole submission safely
// because settlement dedups on the request id.
func (p *kafkaProducer) PublishReservation(ctx context.Context, fact *entity.ReservationAccepted) error {
	value, err := json.Marshal(fact)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(fact.EventID, 10)),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logrus.Errorf("Failed to write message to Kafka: %v", err)
		return entity.ErrPublishFailed
	}

	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}
