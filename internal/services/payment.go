package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"vitrine/internal/domain"
)

// BuildPaymentCode assembles the copy-paste payment payload for one order:
// a versioned, pipe-delimited instruction embedding the order reference,
// the amount and a one-time token. The payment front end renders the same
// payload as a scannable code.
func BuildPaymentCode(orderID string, totalCents int64) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("VITRINE1|%s|%s|%s", orderID, domain.FormatCents(totalCents), token)
}

// CodeURL builds the renderable visual-code reference for a payload.
func CodeURL(base, code string) string {
	if base == "" {
		return ""
	}
	return base + url.QueryEscape(code)
}
