package service

import (
	"context"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/google/uuid"
)

type ListFilter struct {
	Status string // "" или "all": без фильтра
	Limit  int
	Offset int
}

// UpdateOrderInput: nil означает "поле не прислали".
type UpdateOrderInput struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	DeliveryType  *string
	Zone          *string
	PaymentMethod *string
	Notes         *string
	Items         *[]ItemInput
	Status        *string
	StatusNotes   string
}

type CreatedOrder struct {
	Order       *models.Order
	WhatsappURL *string // ссылка на WhatsApp магазина, nil если номер не настроен
}

type OrderDetail struct {
	Order  *models.Order       `json:"order"`
	Events []models.OrderEvent `json:"events"`
	Notes  []models.OrderNote  `json:"notes"`
}

type NoteResult struct {
	Note        *models.OrderNote `json:"note"`
	WhatsappURL *string           `json:"whatsapp_url"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, in OrderInput) (*CreatedOrder, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetail, error)
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, note string) (*models.Order, error)
	UpdateItems(ctx context.Context, id uuid.UUID, items []ItemInput) (*models.Order, error)
	AddNote(ctx context.Context, id uuid.UUID, note, createdBy string) (*models.OrderNote, error)
	SendNote(ctx context.Context, id uuid.UUID, note string) (*NoteResult, error)
	FollowUpLink(ctx context.Context, id uuid.UUID) (*string, error)
}
