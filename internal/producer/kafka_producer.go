package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/model"
	"github.com/gefm2002/fuegoamigo/internal/service"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderProducer struct {
	writer messageWriter
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *OrderProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.publish(ctx, e.OrderID.String(), service.EventOrderCreated, e)
}

func (p *OrderProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, e.OrderID.String(), service.EventOrderStatusChanged, e)
}

// publish: ключ: id заказа, чтобы события одного заказа шли в одну партицию по порядку.
func (p *OrderProducer) publish(ctx context.Context, key, typ string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(model.OrderEnvelope{Type: typ, Data: data})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *OrderProducer) Close() error {
	return p.writer.Close()
}
