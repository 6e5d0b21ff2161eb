package crm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// identifierWidth ancho mínimo del contador (L001, CUST002).
const identifierWidth = 3

// IdentifierPattern expresión regular POSIX que reconoce IDs con el formato prefijo + dígitos.
// IDs que no la cumplen (p. ej. UUIDs mezclados en la misma columna) se ignoran.
func IdentifierPattern(prefix string) string {
	return "^" + regexp.QuoteMeta(prefix) + "[0-9]+$"
}

// NextIdentifier calcula el siguiente ID a partir del mayor existente.
// lastID vacío → prefijo001. Si el sufijo no es numérico se reinicia en 1.
func NextIdentifier(prefix, lastID string) string {
	n := 1
	if lastID != "" {
		suffix := strings.TrimPrefix(lastID, prefix)
		if v, err := strconv.Atoi(suffix); err == nil && suffix != lastID {
			n = v + 1
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, identifierWidth, n)
}
