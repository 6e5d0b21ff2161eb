package crm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SplitFullName separa un nombre completo: primer token = nombre, resto unido por un espacio = apellido.
// El texto se normaliza a NFC para que nombres con tildes compuestas comparen igual.
func SplitFullName(full string) (first, last string) {
	tokens := strings.Fields(norm.NFC.String(full))
	if len(tokens) == 0 {
		return "", ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}

// JoinName une nombre y apellido sin espacios sobrantes.
func JoinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
