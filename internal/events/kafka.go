package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes order events to Kafka, keyed by order id so all
// events of one order stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaPublisher builds a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

// Publish marshals and writes the event, logging failures instead of
// returning them.
func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal order event", slog.String("error", err.Error()))
		return
	}
	msg := kafka.Message{
		Key:   PartitionKey(event.OrderID),
		Value: value,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish order event failed",
			slog.Int64("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
	}
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// PartitionKey builds the kafka message key for an order.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
