// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "IN"

// LocalLength is the required number of digits for a stored phone number.
const LocalLength = 10

// Normalize strips every non-digit character from the input. Inputs longer
// than ten digits are additionally run through libphonenumber so that a
// country prefix (e.g. "+91 98765 43210") collapses to the national number.
func Normalize(input string) string {
	digits := stripNonDigits(input)
	if len(digits) <= LocalLength {
		return digits
	}

	number, err := phonenumbers.Parse(strings.TrimSpace(input), defaultRegion)
	if err != nil {
		return digits
	}

	national := strconv.FormatUint(number.GetNationalNumber(), 10)
	if len(national) == LocalLength {
		return national
	}
	return digits
}

// IsValid reports whether the normalized number has exactly ten digits.
func IsValid(normalized string) bool {
	return len(normalized) == LocalLength && stripNonDigits(normalized) == normalized
}

func stripNonDigits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
