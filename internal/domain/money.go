package domain

import "fmt"

// FormatCents renders a minor-unit amount as a decimal string ("7480" -> "74.80").
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
