package dto

import (
	"bytes"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// LooseNumber принимает число, число в строке или null. Всё остальное молча
// оставляет значение незаданным: корзина витрины присылает что угодно.
type LooseNumber struct {
	Value decimal.Decimal
	Set   bool
}

func (n *LooseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	n.Value = d
	n.Set = true
	return nil
}

func (n LooseNumber) DecimalPtr() *decimal.Decimal {
	if !n.Set {
		return nil
	}
	v := n.Value
	return &v
}

var (
	maxInt = decimal.NewFromInt(math.MaxInt)
	minInt = decimal.NewFromInt(math.MinInt)
)

// IntPtr отбрасывает дробную часть. Значение вне диапазона int считается незаданным.
func (n LooseNumber) IntPtr() *int {
	if !n.Set {
		return nil
	}
	d := n.Value.Truncate(0)
	if d.GreaterThan(maxInt) || d.LessThan(minInt) {
		return nil
	}
	v := int(d.IntPart())
	return &v
}

func (n LooseNumber) IntOr(def int) int {
	if p := n.IntPtr(); p != nil {
		return *p
	}
	return def
}

func (n LooseNumber) DecimalOr(def decimal.Decimal) decimal.Decimal {
	if n.Set {
		return n.Value
	}
	return def
}
