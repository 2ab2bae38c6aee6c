package service

import (
	"strconv"
	"strings"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/shopspring/decimal"
)

// ItemInput: позиция корзины как её прислал клиент. Price и Qty nil, если поле
// отсутствовало или не было числом.
type ItemInput struct {
	ProductID string
	Name      string
	Variant   string
	Price     *decimal.Decimal
	Qty       *int
	Note      string
}

type OrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	DeliveryType  string
	Zone          string
	PaymentMethod string
	Items         []ItemInput
	Notes         string
}

// BuiltOrder: результат сборки заказа, готовый к сохранению.
type BuiltOrder struct {
	Lines           models.CartLines
	Subtotal        decimal.Decimal
	Total           decimal.Decimal
	WhatsappMessage string
}

const (
	orderDisclaimer = "Importante: Los pedidos serán mediante transferencia de seña a coordinar en el próximo paso."
	orderSignOff    = "Gracias por tu pedido! 🔥"
)

// ValidateOrderInput собирает все ошибки разом.
func ValidateOrderInput(in OrderInput) error {
	ve := &ValidationError{}
	required := []struct {
		field string
		value string
	}{
		{"customer_name", in.CustomerName},
		{"customer_phone", in.CustomerPhone},
		{"delivery_type", in.DeliveryType},
		{"payment_method", in.PaymentMethod},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			ve.Missing = append(ve.Missing, r.field)
		}
	}
	if len(in.Items) == 0 {
		ve.Missing = append(ve.Missing, "items")
	}
	if in.DeliveryType != "" && !models.DeliveryType(in.DeliveryType).Valid() {
		ve.Invalid = append(ve.Invalid, "delivery_type")
	}
	if models.DeliveryType(in.DeliveryType) == models.DeliveryTypeDelivery && strings.TrimSpace(in.Zone) == "" {
		ve.Missing = append(ve.Missing, "zone")
	}
	if in.PaymentMethod != "" && !models.PaymentMethod(in.PaymentMethod).Valid() {
		ve.Invalid = append(ve.Invalid, "payment_method")
	}
	if !itemsPriceable(in.Items) {
		ve.Invalid = append(ve.Invalid, "items")
	}
	if ve.empty() {
		return nil
	}
	return ve
}

// MaxOrderAmount: потолок цены позиции и суммы заказа.
var MaxOrderAmount = decimal.New(1, 12)

// itemsPriceable: цены не отрицательные, цена позиции и итог не выше MaxOrderAmount.
// Пустая корзина проверяется отдельно как missing.
func itemsPriceable(items []ItemInput) bool {
	for _, it := range items {
		if it.Price != nil && (it.Price.IsNegative() || it.Price.GreaterThan(MaxOrderAmount)) {
			return false
		}
	}
	_, total := PriceItems(NormalizeItems(items))
	return !total.GreaterThan(MaxOrderAmount)
}

// NormalizeItems превращает клиентские позиции в снимок корзины:
// цена по умолчанию 0, количество по умолчанию 1.
func NormalizeItems(items []ItemInput) models.CartLines {
	lines := make(models.CartLines, 0, len(items))
	for _, it := range items {
		price := decimal.Zero
		if it.Price != nil {
			price = *it.Price
		}
		qty := 1
		if it.Qty != nil && *it.Qty > 0 {
			qty = *it.Qty
		}
		lines = append(lines, models.CartLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Variant:   it.Variant,
			UnitPrice: price,
			Quantity:  qty,
			Note:      it.Note,
		})
	}
	return lines
}

// BuildOrder проверяет вход, считает суммы и собирает текст для WhatsApp. Без I/O.
func BuildOrder(in OrderInput) (*BuiltOrder, error) {
	if err := ValidateOrderInput(in); err != nil {
		return nil, err
	}
	lines := NormalizeItems(in.Items)
	subtotal, total := PriceItems(lines)
	return &BuiltOrder{
		Lines:           lines,
		Subtotal:        subtotal,
		Total:           total,
		WhatsappMessage: RenderOrderMessage(in, lines, total),
	}, nil
}

func RenderOrderMessage(in OrderInput, lines models.CartLines, total decimal.Decimal) string {
	dt := models.DeliveryType(in.DeliveryType)

	out := []string{"Hola soy " + in.CustomerName + ", quiero hacer un pedido.", ""}
	out = append(out, "*Tipo de entrega:* "+dt.Label(), "")

	if dt == models.DeliveryTypeDelivery && in.Zone != "" {
		out = append(out, "*Zona/Barrio:* "+in.Zone, "")
	}

	out = append(out, "*Productos:*")
	for _, l := range lines {
		variant := ""
		if l.Variant != "" {
			variant = " (" + l.Variant + ")"
		}
		out = append(out, strconv.Itoa(l.Quantity)+"x "+l.Name+variant+" - $"+FormatARS(l.LineTotal()))
	}

	out = append(out, "", "*Total estimado: $"+FormatARS(total)+"*", "")
	out = append(out, "*Medio de pago:* "+in.PaymentMethod)

	if in.Notes != "" {
		out = append(out, "", "*Notas:* "+in.Notes)
	}

	out = append(out, "", orderDisclaimer, "", orderSignOff)
	return strings.Join(out, "\n")
}
