package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const eventNameHeader = "event-name"

// orderStatusChangedMessage is the JSON payload of order.StatusChanged.
// From is empty for the creation event.
type orderStatusChangedMessage struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Actor       string    `json:"actor"`
	Note        string    `json:"note"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderEventPublisher implements ports.EventPublisher on a sarama
// SyncProducer. Messages are keyed by order number so the changes of one
// order keep their order within a partition.
type OrderEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewOrderEventPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *OrderEventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderEventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With(zap.String("component", "order_event_publisher"), zap.String("topic", topic)),
	}
}

// Publish sends the events in order. Events of kinds it does not know are
// skipped. Every event is attempted; the failures are returned joined.
func (p *OrderEventPublisher) Publish(ctx context.Context, events ...kernel.Event) error {
	var failures []error
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(failures, err)...)
		}

		msg, err := p.message(event)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if msg == nil {
			p.logger.Debug("skipping event without a message mapping", zap.String("event", event.EventName()))
			continue
		}

		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			failures = append(failures, fmt.Errorf("send %s for %s: %w", event.EventName(), event.EventKey(), err))
			continue
		}
		p.logger.Debug("event published",
			zap.String("event", event.EventName()),
			zap.String("key", event.EventKey()),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset),
		)
	}
	return errors.Join(failures...)
}

// Close closes the underlying producer.
func (p *OrderEventPublisher) Close() error {
	return p.producer.Close()
}

func (p *OrderEventPublisher) message(event kernel.Event) (*sarama.ProducerMessage, error) {
	changed, ok := event.(order.StatusChanged)
	if !ok {
		return nil, nil //nolint:nilnil // unknown events have no message
	}

	payload, err := json.Marshal(orderStatusChangedMessage{
		OrderID:     changed.OrderID.String(),
		OrderNumber: changed.Number.String(),
		From:        changed.From.String(),
		To:          changed.To.String(),
		Actor:       changed.Actor,
		Note:        changed.Note,
		OccurredAt:  changed.OccurredAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}

	return &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(changed.EventKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(eventNameHeader), Value: []byte(event.EventName())},
		},
		Timestamp: changed.OccurredAt,
	}, nil
}
