package model

import "encoding/json"

type EmailNotification struct {
	To       string
	Subject  string
	Template string         // имя шаблона (например, "order_created")
	Data     map[string]any // данные для шаблона
}

// OrderEnvelope: сообщение в топике заказов: тип события и само событие.
type OrderEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
