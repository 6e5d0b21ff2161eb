package crm

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// MaxPhoneDigits ancho de customer.phone_num y customer.alt_num.
const MaxPhoneDigits = 20

// NormalizePhone forma canónica de un teléfono: solo dígitos ASCII.
// "+91 12345-67890" → "911234567890". Dígitos Unicode (p. ej. ०-९) se convierten a ASCII.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return phonenumbers.NormalizeDigitsOnly(raw)
}
