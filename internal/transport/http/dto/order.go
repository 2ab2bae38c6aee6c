package dto

import (
	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/service"
)

type OrderItemRequest struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Variant   string      `json:"variant"`
	Price     LooseNumber `json:"price"`
	Qty       LooseNumber `json:"qty"`
	Notes     string      `json:"notes"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	DeliveryType  string             `json:"delivery_type"`
	Zone          string             `json:"zone"`
	PaymentMethod string             `json:"payment_method"`
	Items         []OrderItemRequest `json:"items"`
	Notes         string             `json:"notes"`
}

func toItemInputs(items []OrderItemRequest) []service.ItemInput {
	out := make([]service.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, service.ItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Variant:   it.Variant,
			Price:     it.Price.DecimalPtr(),
			Qty:       it.Qty.IntPtr(),
			Note:      it.Notes,
		})
	}
	return out
}

func (r CreateOrderRequest) ToInput() service.OrderInput {
	return service.OrderInput{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		DeliveryType:  r.DeliveryType,
		Zone:          r.Zone,
		PaymentMethod: r.PaymentMethod,
		Items:         toItemInputs(r.Items),
		Notes:         r.Notes,
	}
}

// CreateOrderResponse: заказ целиком плюс ссылка на WhatsApp магазина.
type CreateOrderResponse struct {
	*models.Order
	WhatsappURL *string `json:"whatsapp_url"`
}

type UpdateOrderRequest struct {
	CustomerName  *string             `json:"customer_name"`
	CustomerEmail *string             `json:"customer_email"`
	CustomerPhone *string             `json:"customer_phone"`
	DeliveryType  *string             `json:"delivery_type"`
	Zone          *string             `json:"zone"`
	PaymentMethod *string             `json:"payment_method"`
	Notes         *string             `json:"notes"`
	Items         *[]OrderItemRequest `json:"items"`
	Status        *string             `json:"status"`
	StatusNotes   string              `json:"status_notes"`
}

func (r UpdateOrderRequest) ToInput() service.UpdateOrderInput {
	in := service.UpdateOrderInput{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		DeliveryType:  r.DeliveryType,
		Zone:          r.Zone,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		Status:        r.Status,
		StatusNotes:   r.StatusNotes,
	}
	if r.Items != nil {
		items := toItemInputs(*r.Items)
		in.Items = &items
	}
	return in
}

type ListOrdersResponse struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
}

type AddNoteRequest struct {
	Note string `json:"note"`
}

type LinkResponse struct {
	WhatsappURL *string `json:"whatsapp_url"`
}
