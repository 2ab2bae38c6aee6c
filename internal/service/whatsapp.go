package service

import (
	"fmt"
	"strings"

	"github.com/gefm2002/fuegoamigo/internal/models"
)

const waBaseURL = "https://wa.me/"

// DigitsOnly оставляет в телефоне только цифры.
func DigitsOnly(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// BuildMessagingLink returns a wa.me link with the message as the text parameter.
// ok is false when the phone has no digits; callers must not build a link then.
func BuildMessagingLink(phone, message string) (link string, ok bool) {
	digits := DigitsOnly(phone)
	if digits == "" {
		return "", false
	}
	return waBaseURL + digits + "?text=" + encodeURIComponent(message), true
}

// NoteMessage: текст, который сотрудник отправляет клиенту вместе с заметкой.
func NoteMessage(orderNumber int64, note string) string {
	return fmt.Sprintf("*Actualización Pedido #%d*\n\n%s", orderNumber, note)
}

// StatusMessage: напоминание клиенту о текущем статусе заказа.
func StatusMessage(o *models.Order) string {
	return fmt.Sprintf("*Pedido #%d*\n\nHola %s, tu pedido está: *%s*", o.OrderNumber, o.CustomerName, o.Status.Label())
}

const upperhex = "0123456789ABCDEF"

// encodeURIComponent кодирует всё, кроме A-Z a-z 0-9 и - _ . ! ~ * ' ( ).
// Звёздочки разметки остаются читаемыми, пробел становится %20.
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func uriUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
