package brdoc

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const phoneRegion = "BR"

// NormalizePhone formatea un teléfono brasileño a E.164 (+5511999990000).
// Si no se puede interpretar como número válido devuelve el texto recortado.
func NormalizePhone(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	number, err := phonenumbers.Parse(trimmed, phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
