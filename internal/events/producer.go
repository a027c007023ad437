package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"cr-records/internal/logger"
	"cr-records/internal/models"
)

const (
	EventOrderPlaced  = "order_placed"
	EventOrderUpdated = "order_updated"
)

// OrderEvent is the message body published for order lifecycle changes.
type OrderEvent struct {
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Order      models.Order `json:"order"`
}

// Producer streams order events to Kafka. In mock mode messages are logged
// instead of written, so the storefront runs without a broker.
type Producer struct {
	Writer   *kafka.Writer
	Logger   *logger.Logger
	MockMode bool
}

func NewProducer(brokers []string, topic string, log *logger.Logger, mockMode bool) *Producer {
	p := &Producer{Logger: log, MockMode: mockMode}
	if !mockMode {
		p.Writer = kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   topic,
		})
	}
	return p
}

func (p *Producer) publish(eventType string, order models.Order) error {
	event := OrderEvent{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Order:      order,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", eventType, err)
	}

	if p.MockMode {
		p.Logger.Info("KAFKA", fmt.Sprintf("[mock] %s %s", eventType, order.ID))
		return nil
	}

	return p.Writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
	})
}

// PublishOrderPlaced streams a fresh order.
func (p *Producer) PublishOrderPlaced(order models.Order) error {
	return p.publish(EventOrderPlaced, order)
}

// PublishOrderUpdated streams an admin update.
func (p *Producer) PublishOrderUpdated(order models.Order) error {
	return p.publish(EventOrderUpdated, order)
}

func (p *Producer) Close() error {
	if p.Writer != nil {
		return p.Writer.Close()
	}
	return nil
}
