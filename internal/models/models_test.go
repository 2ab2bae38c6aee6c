package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFinalPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		fixed    string
		percent  string
		expected string
	}{
		{"no discount", "15000", "0", "0", "15000"},
		{"fixed only", "15000", "1500", "0", "13500"},
		{"percent only", "15000", "0", "10", "13500"},
		{"fixed then percent", "20000", "2000", "10", "16200"},
		{"rounded to cents", "999.99", "0", "33", "669.99"},
		{"never negative", "1000", "1500", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{
				Price:              decimal.RequireFromString(tc.price),
				DiscountFixed:      decimal.RequireFromString(tc.fixed),
				DiscountPercentage: decimal.RequireFromString(tc.percent),
			}
			if got := p.FinalPrice(); !got.Equal(decimal.RequireFromString(tc.expected)) {
				t.Fatalf("FinalPrice = %s, want %s", got, tc.expected)
			}
		})
	}
}

func TestCartLinesJSONB(t *testing.T) {
	lines := CartLines{{Name: "Box", Variant: "x2", UnitPrice: decimal.NewFromInt(1200), Quantity: 3}}
	v, err := lines.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var back CartLines
	if err := back.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(back) != 1 || back[0].Quantity != 3 || !back[0].LineTotal().Equal(decimal.NewFromInt(3600)) {
		t.Fatalf("round trip lost data: %+v", back)
	}

	var raw []map[string]any
	if err := json.Unmarshal([]byte(v.(string)), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw[0]["qty"] != float64(3) || raw[0]["name"] != "Box" {
		t.Fatalf("unexpected wire keys: %v", raw[0])
	}
}

func TestJSONBNilValues(t *testing.T) {
	if v, _ := CartLines(nil).Value(); v != "[]" {
		t.Fatalf("nil CartLines = %v", v)
	}
	if v, _ := StringList(nil).Value(); v != "[]" {
		t.Fatalf("nil StringList = %v", v)
	}
	if v, _ := StringMap(nil).Value(); v != "{}" {
		t.Fatalf("nil StringMap = %v", v)
	}

	var s StringList
	if err := s.Scan(nil); err != nil || s != nil {
		t.Fatalf("Scan(nil) = %v, %v", s, err)
	}
	if err := s.Scan(42); err == nil {
		t.Fatal("expected error for unsupported source")
	}
	var m StringMap
	if err := m.Scan(`{"lunes":"cerrado"}`); err != nil || m["lunes"] != "cerrado" {
		t.Fatalf("Scan string = %v, %v", m, err)
	}
}

func TestStatusHelpers(t *testing.T) {
	if !OrderStatusReady.Valid() || OrderStatus("lost").Valid() {
		t.Fatal("Valid mismatch")
	}
	if !OrderStatusCancelled.Terminal() || OrderStatusPending.Terminal() {
		t.Fatal("Terminal mismatch")
	}
	if OrderStatusPreparing.Label() != "En preparación" {
		t.Fatalf("label = %q", OrderStatusPreparing.Label())
	}
	if !PaymentMethod("billeteras-qr").Valid() || PaymentMethod("cheque").Valid() {
		t.Fatal("payment Valid mismatch")
	}
	if DeliveryTypePickup.Label() != "Retiro" {
		t.Fatal("delivery label mismatch")
	}
}
