package history

import (
	"strings"

	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
)

const (
	paymentEntrySep = "|||"
	paymentFieldSep = "__"
)

// PaymentEntry is one record of the payment log. Amount stays a string on
// purpose; the value round-trips without float precision loss.
type PaymentEntry struct {
	Amount         string
	Date           string
	UTR            string
	Approved       bool
	CreditedRMID   string
	CreditedRMName string
	PackageTier    string
}

// EncodePayment serializes entries in the given (chronological) order.
// The approved flag is written as "1"/"0". Fields must not contain the
// delimiter sequences.
func EncodePayment(entries []PaymentEntry) (string, error) {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		fields := []string{
			entry.Amount,
			entry.Date,
			entry.UTR,
			encodeApproved(entry.Approved),
			entry.CreditedRMID,
			entry.CreditedRMName,
			entry.PackageTier,
		}
		for _, field := range fields {
			if containsPaymentDelimiter(field) {
				return "", apperr.Validation("payment fields may not contain reserved delimiter sequences")
			}
		}
		parts = append(parts, strings.Join(fields, paymentFieldSep))
	}
	return strings.Join(parts, paymentEntrySep), nil
}

// DecodePayment parses an encoded payment log back into chronological
// entries. Rows written before the approved flag existed have no fourth
// field; those decode as approved, which matches how the system has always
// read them.
func DecodePayment(encoded string) []PaymentEntry {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}

	raw := strings.Split(encoded, paymentEntrySep)
	entries := make([]PaymentEntry, 0, len(raw))
	for _, part := range raw {
		if part == "" {
			continue
		}
		entries = append(entries, decodePaymentEntry(part))
	}
	return entries
}

func decodePaymentEntry(part string) PaymentEntry {
	fields := strings.Split(part, paymentFieldSep)
	get := func(index int) string {
		if index < len(fields) {
			return fields[index]
		}
		return ""
	}

	entry := PaymentEntry{
		Amount:         get(0),
		Date:           get(1),
		UTR:            get(2),
		CreditedRMID:   get(4),
		CreditedRMName: get(5),
		PackageTier:    get(6),
	}

	flag := get(3)
	if len(fields) < 4 || flag == "" {
		entry.Approved = true
	} else {
		entry.Approved = flag == "1" || strings.EqualFold(flag, "true")
	}
	return entry
}

// ReversePayment returns a copy of entries in the opposite order.
func ReversePayment(entries []PaymentEntry) []PaymentEntry {
	out := make([]PaymentEntry, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = entry
	}
	return out
}

// ValidateAmount checks that value is a non-negative decimal with at most one
// decimal point. The codec itself never re-validates on decode.
func ValidateAmount(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return apperr.Validation("amount is required")
	}

	dots := 0
	digits := 0
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return apperr.Validation("amount must be a non-negative decimal")
		}
	}
	if digits == 0 || dots > 1 {
		return apperr.Validation("amount must be a non-negative decimal")
	}
	return nil
}

func encodeApproved(approved bool) string {
	if approved {
		return "1"
	}
	return "0"
}

func containsPaymentDelimiter(value string) bool {
	return strings.Contains(value, paymentEntrySep) || strings.Contains(value, paymentFieldSep)
}
