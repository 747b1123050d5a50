package utils

import (
	"fmt"
	"strings"
)

// NormalizePhone cleans a raw phone number into E.164. Numbers without a
// country code are assumed to be South African: a leading 0 is stripped and
// +27 prepended. A +27 number must be exactly 12 characters.
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")

	if phone == "" {
		return "", fmt.Errorf("phone number is required")
	}

	if !strings.HasPrefix(phone, "+") {
		phone = "+27" + strings.TrimLeft(phone, "0")
	}

	if strings.HasPrefix(phone, "+27") && len(phone) != 12 {
		return "", fmt.Errorf("invalid phone number: '%s'. South African numbers must have 12 characters (e.g., +27123456789)", phone)
	}

	return phone, nil
}
