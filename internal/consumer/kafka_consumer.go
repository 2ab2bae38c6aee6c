package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/model"
	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const orderCreatedTemplate = "order_created"

type Mailer interface {
	SendEmail(n model.EmailNotification) error
}

// errSkip: сообщение корректное, но письмо отправлять некому.
var errSkip = errors.New("skip")

type KafkaOrderConsumer struct {
	reader *kafka.Reader
	mailer Mailer
	log    *zap.Logger
}

func NewKafkaOrderConsumer(brokers []string, groupID, topic string, mailer Mailer, log *zap.Logger) *KafkaOrderConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &KafkaOrderConsumer{reader: r, mailer: mailer, log: log}
}

func (c *KafkaOrderConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		if err := c.Handle(m.Value); err != nil && !errors.Is(err, errSkip) {
			c.log.Error("handle order message", zap.ByteString("key", m.Key), zap.Error(err))
		}
	}
}

// Handle разбирает одно сообщение топика заказов.
func (c *KafkaOrderConsumer) Handle(value []byte) error {
	var env model.OrderEnvelope
	if err := json.Unmarshal(value, &env); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	switch env.Type {
	case service.EventOrderCreated:
		var e service.OrderCreatedEvent
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("unmarshal order.created: %w", err)
		}
		return c.orderCreated(e)
	case service.EventOrderStatusChanged:
		var e service.OrderStatusChangedEvent
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("unmarshal order.status_changed: %w", err)
		}
		c.log.Info("order status changed", zap.Int64("order_number", e.OrderNumber), zap.String("status", e.Status))
		return nil
	default:
		c.log.Warn("unknown order message type", zap.String("type", env.Type))
		return errSkip
	}
}

func (c *KafkaOrderConsumer) orderCreated(e service.OrderCreatedEvent) error {
	if e.CustomerEmail == "" {
		return errSkip
	}
	n := OrderCreatedEmail(e)
	if err := c.mailer.SendEmail(n); err != nil {
		return fmt.Errorf("send email to %s: %w", e.CustomerEmail, err)
	}
	c.log.Info("email sent", zap.String("to", n.To), zap.String("template", n.Template), zap.Int64("order_number", e.OrderNumber))
	return nil
}

// OrderCreatedEmail готовит данные письма; суммы уже отформатированы как es-AR.
func OrderCreatedEmail(e service.OrderCreatedEvent) model.EmailNotification {
	items := make([]map[string]any, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, map[string]any{
			"Name":      it.Name,
			"Variant":   it.Variant,
			"Qty":       it.Quantity,
			"LineTotal": service.FormatARS(it.LineTotal),
		})
	}
	return model.EmailNotification{
		To:       e.CustomerEmail,
		Subject:  fmt.Sprintf("Fuego Amigo - Pedido #%d recibido", e.OrderNumber),
		Template: orderCreatedTemplate,
		Data: map[string]any{
			"OrderNumber":   e.OrderNumber,
			"CustomerName":  e.CustomerName,
			"DeliveryLabel": models.DeliveryType(e.DeliveryType).Label(),
			"Zone":          e.Zone,
			"PaymentMethod": e.PaymentMethod,
			"Items":         items,
			"Total":         service.FormatARS(e.Total),
		},
	}
}

func (c *KafkaOrderConsumer) Close() error { return c.reader.Close() }
