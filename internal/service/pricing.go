package service

import (
	"strings"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/shopspring/decimal"
)

// PriceItems считает subtotal и total по снимку корзины. Скидок и налогов нет: total = subtotal.
func PriceItems(lines models.CartLines) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	return subtotal, subtotal
}

// FormatARS печатает число как es-AR: точка между тысячами, запятая перед дробью,
// не больше трёх знаков после запятой, хвостовые нули отбрасываются.
func FormatARS(d decimal.Decimal) string {
	s := d.Round(3).StringFixed(3)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if neg && (strings.Trim(intPart, "0") != "" || frac != "") {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}
