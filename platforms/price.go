package platforms

import (
	"strconv"
	"strings"
)

// cleanNumeric strips everything but digits and separators from a price
// string ("$1,049.99" → "1,049.99", "42.999,00 TL" → "42.999,00").
func cleanNumeric(text string) string {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parsePrice parses a price string with unknown separator convention.
//
// When both separators are present, the rightmost one is the decimal mark:
// "1,049.99" is US, "1.049,99" is EU. A lone comma followed by exactly two
// digits is a decimal comma ("49,99"); otherwise it is a thousands
// separator ("1,049").
func parsePrice(text string) (float64, bool) {
	cleaned := cleanNumeric(text)
	if cleaned == "" {
		return 0, false
	}

	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			// US: 1,049.99
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			// EU: 1.049,99
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	case lastComma >= 0:
		if len(cleaned)-lastComma-1 == 2 {
			// Decimal comma: 49,99
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// Thousands separator: 1,049
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parsePriceEU parses a price in the European/Turkish convention where
// dots are thousands separators and the comma is the decimal mark:
// "42.999,00" → 42999.00, "1.199,00 €" → 1199.00.
func parsePriceEU(text string) (float64, bool) {
	cleaned := cleanNumeric(text)
	if cleaned == "" {
		return 0, false
	}
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
