package kafkat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/metric"

	"github.com/segmentio/kafka-go"
)

type orderCreatedEvent struct {
	OrderID   string           `json:"orderId"`
	Method    string           `json:"method"`
	Items     []orderEventItem `json:"items"`
	CreatedAt time.Time        `json:"createdAt"`
}

type orderEventItem struct {
	LessonID string `json:"lessonId"`
	Topic    string `json:"lessonTopic"`
	Quantity int64  `json:"quantity"`
}

// OrderPublisher emits an event for every accepted order. Publishing is
// awaited by the caller but an order is never failed over a broker error.
type OrderPublisher struct {
	writer  *kafka.Writer
	metrics metric.Events
	log     logger.Logger
}

func NewOrderPublisher(
	writer *kafka.Writer,
	metrics metric.Events,
	log logger.Logger,
) *OrderPublisher {
	return &OrderPublisher{
		writer:  writer,
		metrics: metrics,
		log:     log,
	}
}

func (p *OrderPublisher) OrderCreated(ctx context.Context, order *entity.Order) error {
	const op = "transport.kafka.order_publisher.OrderCreated"

	event := orderCreatedEvent{
		OrderID:   order.ID,
		Method:    order.Method,
		Items:     make([]orderEventItem, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, orderEventItem{
			LessonID: item.LessonID.Hex(),
			Topic:    item.LessonTopic,
			Quantity: item.Quantity,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.metrics.Failed(p.writer.Topic, "marshal")
		return fmt.Errorf("%s: marshal event: %w", op, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
	})
	if err != nil {
		p.metrics.Failed(p.writer.Topic, "write")
		return fmt.Errorf("%s: write message: %w", op, err)
	}

	p.metrics.Published(p.writer.Topic)
	p.log.Infow("order event published",
		"topic", p.writer.Topic,
		"order_id", order.ID,
	)

	return nil
}

func (p *OrderPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("transport.kafka.order_publisher.Close: %w", err)
	}
	return nil
}

// NopPublisher is wired when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *entity.Order) error {
	return nil
}
