package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Деньги уходят в JSON числом, как их ждёт витрина.
	decimal.MarshalJSONWithoutQuotes = true
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the status ends the lifecycle. Staff may still move an order out of it.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pendiente"
	case OrderStatusConfirmed:
		return "Confirmado"
	case OrderStatusPreparing:
		return "En preparación"
	case OrderStatusReady:
		return "Listo"
	case OrderStatusDelivered:
		return "Entregado"
	case OrderStatusCancelled:
		return "Cancelado"
	default:
		return string(s)
	}
}

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "entrega"
	DeliveryTypePickup   DeliveryType = "retiro"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryTypeDelivery || d == DeliveryTypePickup
}

func (d DeliveryType) Label() string {
	if d == DeliveryTypeDelivery {
		return "Entrega"
	}
	return "Retiro"
}

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "efectivo"
	PaymentCard        PaymentMethod = "tarjeta"
	PaymentTransfer    PaymentMethod = "transferencia"
	PaymentModo        PaymentMethod = "modo"
	PaymentMercadoPago PaymentMethod = "mercado"
	PaymentQRWallets   PaymentMethod = "billeteras-qr"
)

var PaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentCard,
	PaymentTransfer,
	PaymentModo,
	PaymentMercadoPago,
	PaymentQRWallets,
}

func (p PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if p == v {
			return true
		}
	}
	return false
}

// CartLine: снимок позиции корзины на момент заказа. Цена уже со скидкой.
type CartLine struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Variant   string          `json:"variant,omitempty"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"qty"`
	Note      string          `json:"notes,omitempty"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber     int64           `gorm:"not null;default:nextval('orders_order_number_seq');uniqueIndex:ux_orders_order_number" json:"order_number"`
	CustomerName    string          `gorm:"type:text;not null" json:"customer_name"`
	CustomerEmail   *string         `gorm:"type:text" json:"customer_email"`
	CustomerPhone   string          `gorm:"type:text;not null" json:"customer_phone"`
	DeliveryType    DeliveryType    `gorm:"type:text;not null" json:"delivery_type"`
	Zone            *string         `gorm:"type:text" json:"zone"`
	PaymentMethod   PaymentMethod   `gorm:"type:text;not null" json:"payment_method"`
	Items           CartLines       `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	Subtotal        decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"subtotal"`
	Total           decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"total"`
	Notes           *string         `gorm:"type:text" json:"notes"`
	WhatsappMessage string          `gorm:"type:text;not null;default:''" json:"whatsapp_message"`
	Status          OrderStatus     `gorm:"type:text;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderEvent: запись таймлайна статусов, только добавление.
type OrderEvent struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"type:text;not null" json:"status"`
	Notes     string      `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (OrderEvent) TableName() string { return "order_events" }

type OrderNote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Note      string    `gorm:"type:text;not null" json:"note"`
	CreatedBy *string   `gorm:"type:text" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (OrderNote) TableName() string { return "order_notes" }
