package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gefm2002/fuegoamigo/internal/service"

	"github.com/shopspring/decimal"
)

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func qty(n int) *int { return &n }

func baseInput() service.OrderInput {
	return service.OrderInput{
		CustomerName:  "Ana",
		CustomerPhone: "+54 9 11 5555-1234",
		DeliveryType:  "retiro",
		PaymentMethod: "efectivo",
		Items: []service.ItemInput{
			{Name: "Box Ahumado", Price: price(15000), Qty: qty(1)},
		},
	}
}

func TestBuildOrder_TotalsAreSumOfLines(t *testing.T) {
	in := baseInput()
	in.Items = []service.ItemInput{
		{Name: "Empanadas", Price: price(1000), Qty: qty(2)},
		{Name: "Bondiola", Variant: "grande", Price: price(500), Qty: qty(1)},
	}

	got, err := service.BuildOrder(in)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	want := decimal.NewFromInt(2500)
	if !got.Subtotal.Equal(want) || !got.Total.Equal(want) {
		t.Fatalf("subtotal/total = %s/%s, want %s", got.Subtotal, got.Total, want)
	}
	if len(got.Lines) != 2 || got.Lines[1].Variant != "grande" {
		t.Fatalf("unexpected lines: %+v", got.Lines)
	}
}

func TestBuildOrder_PermissiveDefaults(t *testing.T) {
	in := baseInput()
	in.Items = []service.ItemInput{
		{Name: "Sin precio", Qty: qty(3)},
		{Name: "Sin cantidad", Price: price(700)},
		{Name: "Cantidad cero", Price: price(100), Qty: qty(0)},
	}

	got, err := service.BuildOrder(in)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	// 0*3 + 700*1 + 100*1
	if !got.Total.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("total = %s, want 800", got.Total)
	}
	if got.Lines[1].Quantity != 1 || got.Lines[2].Quantity != 1 {
		t.Fatalf("missing/zero qty must default to 1: %+v", got.Lines)
	}
	if !got.Lines[0].UnitPrice.IsZero() {
		t.Fatalf("missing price must default to 0")
	}
}

func TestBuildOrder_FractionalPricesKeepPrecision(t *testing.T) {
	in := baseInput()
	p := decimal.RequireFromString("1250.75")
	in.Items = []service.ItemInput{{Name: "Queso", Price: &p, Qty: qty(3)}}

	got, err := service.BuildOrder(in)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if got.Total.String() != "3752.25" {
		t.Fatalf("total = %s, want 3752.25", got.Total)
	}
	if !strings.Contains(got.WhatsappMessage, "*Total estimado: $3.752,25*") {
		t.Fatalf("message does not contain es-AR total:\n%s", got.WhatsappMessage)
	}
}

func TestBuildOrder_SubCentPricesAreNotRounded(t *testing.T) {
	in := baseInput()
	p := decimal.RequireFromString("0.333")
	in.Items = []service.ItemInput{{Name: "Chimichurri", Price: &p, Qty: qty(3)}}

	got, err := service.BuildOrder(in)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	sum := decimal.Zero
	for _, l := range got.Lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if got.Total.String() != "0.999" || !got.Total.Equal(sum) {
		t.Fatalf("total = %s, lines sum = %s", got.Total, sum)
	}
	if !strings.Contains(got.WhatsappMessage, "*Total estimado: $0,999*") {
		t.Fatalf("message total:\n%s", got.WhatsappMessage)
	}
}

func TestBuildOrder_RejectsUnpriceableItems(t *testing.T) {
	neg := decimal.NewFromInt(-5000)
	huge := service.MaxOrderAmount.Add(decimal.NewFromInt(1))
	half := service.MaxOrderAmount.Div(decimal.NewFromInt(2))

	cases := map[string][]service.ItemInput{
		"negative price": {{Name: "Box", Price: &neg, Qty: qty(1)}},
		"price over cap": {{Name: "Box", Price: &huge, Qty: qty(1)}},
		"total over cap": {{Name: "Box", Price: &half, Qty: qty(3)}},
		"huge quantity":  {{Name: "Box", Price: price(10000), Qty: qty(1_000_000_000)}},
	}
	for name, items := range cases {
		in := baseInput()
		in.Items = items
		_, err := service.BuildOrder(in)
		if err == nil || err.Error() != "Invalid fields: items" {
			t.Fatalf("%s: error = %v", name, err)
		}
	}

	in := baseInput()
	in.Items = []service.ItemInput{{Name: "Box", Price: &half, Qty: qty(2)}}
	if _, err := service.BuildOrder(in); err != nil {
		t.Fatalf("total at the cap must pass: %v", err)
	}
}

func TestBuildOrder_ZoneRequiredOnlyForDelivery(t *testing.T) {
	in := baseInput()
	in.DeliveryType = "entrega"
	in.Zone = ""

	_, err := service.BuildOrder(in)
	var ve *service.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Missing) != 1 || ve.Missing[0] != "zone" {
		t.Fatalf("missing = %v, want [zone]", ve.Missing)
	}

	in.DeliveryType = "retiro"
	if _, err := service.BuildOrder(in); err != nil {
		t.Fatalf("pickup without zone must succeed: %v", err)
	}
}

func TestBuildOrder_ListsEveryMissingField(t *testing.T) {
	_, err := service.BuildOrder(service.OrderInput{CustomerName: "  "})
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "Missing fields: customer_name, customer_phone, delivery_type, payment_method, items"
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
	if !service.IsValidation(err) {
		t.Fatalf("IsValidation must be true")
	}
}

func TestBuildOrder_RejectsUnknownEnumValues(t *testing.T) {
	in := baseInput()
	in.DeliveryType = "drone"
	in.PaymentMethod = "bitcoin"

	_, err := service.BuildOrder(in)
	var ve *service.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Invalid) != 2 || ve.Invalid[0] != "delivery_type" || ve.Invalid[1] != "payment_method" {
		t.Fatalf("invalid = %v", ve.Invalid)
	}
	if !strings.HasPrefix(err.Error(), "Invalid fields: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestBuildOrder_MessageIsLiteral(t *testing.T) {
	in := baseInput()
	in.DeliveryType = "entrega"
	in.Zone = "Palermo"

	got, err := service.BuildOrder(in)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}

	want := "Hola soy Ana, quiero hacer un pedido.\n" +
		"\n" +
		"*Tipo de entrega:* Entrega\n" +
		"\n" +
		"*Zona/Barrio:* Palermo\n" +
		"\n" +
		"*Productos:*\n" +
		"1x Box Ahumado - $15.000\n" +
		"\n" +
		"*Total estimado: $15.000*\n" +
		"\n" +
		"*Medio de pago:* efectivo\n" +
		"\n" +
		"Importante: Los pedidos serán mediante transferencia de seña a coordinar en el próximo paso.\n" +
		"\n" +
		"Gracias por tu pedido! 🔥"

	if got.WhatsappMessage != want {
		t.Fatalf("message mismatch\n got: %q\nwant: %q", got.WhatsappMessage, want)
	}
}

func TestBuildOrder_MessagePickupWithNotesAndVariant(t *testing.T) {
	in := baseInput()
	in.Zone = "Ignorada"
	in.Notes = "Sin cebolla"
	in.Items = []service.ItemInput{{Name: "Bondiola", Variant: "grande", Price: price(4500), Qty: qty(2)}}

	got, err := service.BuildOrder(in)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	msg := got.WhatsappMessage
	for _, line := range []string{
		"*Tipo de entrega:* Retiro",
		"2x Bondiola (grande) - $9.000",
		"*Medio de pago:* efectivo\n\n*Notas:* Sin cebolla\n\nImportante:",
	} {
		if !strings.Contains(msg, line) {
			t.Fatalf("message missing %q:\n%s", line, msg)
		}
	}
	if strings.Contains(msg, "Zona/Barrio") {
		t.Fatalf("pickup message must not mention zone:\n%s", msg)
	}
}

func TestBuildOrder_EndToEndScenario(t *testing.T) {
	in := service.OrderInput{
		CustomerName:  "Luis",
		CustomerPhone: "11 4444 3333",
		DeliveryType:  "entrega",
		Zone:          "Belgrano",
		PaymentMethod: "efectivo",
		Items: []service.ItemInput{
			{Name: "Empanadas", Price: price(1200), Qty: qty(3)},
			{Name: "Tabla", Price: price(4500), Qty: qty(1)},
		},
	}
	got, err := service.BuildOrder(in)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if !got.Subtotal.Equal(decimal.NewFromInt(8100)) || !got.Total.Equal(decimal.NewFromInt(8100)) {
		t.Fatalf("subtotal/total = %s/%s, want 8100", got.Subtotal, got.Total)
	}
	if !strings.Contains(got.WhatsappMessage, "*Total estimado: $8.100*") {
		t.Fatalf("message:\n%s", got.WhatsappMessage)
	}
	if !strings.Contains(got.WhatsappMessage, "3x Empanadas - $3.600") {
		t.Fatalf("message:\n%s", got.WhatsappMessage)
	}
}

func TestFormatARS(t *testing.T) {
	cases := map[string]string{
		"0":         "0",
		"5":         "5",
		"999":       "999",
		"1000":      "1.000",
		"8100":      "8.100",
		"15000":     "15.000",
		"1234567.5": "1.234.567,5",
		"0.125":     "0,125",
		"0.1255":    "0,126",
		"10.50":     "10,5",
		"-1500":     "-1.500",
	}
	for in, want := range cases {
		if got := service.FormatARS(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatARS(%s) = %q, want %q", in, got, want)
		}
	}
}
