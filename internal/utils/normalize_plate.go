package utils

import "strings"

// NormalizePlate brings a plate number to a canonical form: no spaces or
// hyphens, upper case. Plates are compared and stored in this form only.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}
