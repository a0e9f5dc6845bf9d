// Package receipt turns raw OCR text from a scanned receipt into a best-guess
// monetary amount and merchant name. Everything here is a pure function over
// the input text: no result is reported as a nil amount or empty merchant,
// never as an error.
package receipt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Guess is the interpreter's best effort at reading a receipt. It is consumed
// once to pre-fill an expense form and then discarded.
type Guess struct {
	RawText  string
	Amount   *float64
	Merchant string
}

// Monetary-looking number: 1-3 leading digits, optional thousands groups,
// optional two-digit fraction. Deliberately also matches plain integers.
var amountPattern = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?`)

// Lines containing one of these carry the receipt's final figure; the last
// number on such a line wins (receipts put the grand total after the running
// calculation on the same line).
var totalKeywords = []string{
	"TOTAL", "TOTAL AMOUNT", "AMOUNT INC", "AMOUNT EX",
	"NET BILL", "NET TOTAL", "GRAND TOTAL",
}

// Lines containing any of these are never merchant names.
var merchantSkipWords = []string{
	"TOTAL", "SUBTOTAL", "TAX", "CHANGE", "AMOUNT", "BALANCE",
	"Q R", "QR", "FBR", "POS", "NET BILL", "INVOICE",
}

// Interpret extracts an amount and merchant guess from raw OCR output.
func Interpret(raw string) Guess {
	guess := Guess{RawText: raw}
	if amount, ok := extractAmount(raw); ok {
		guess.Amount = &amount
	}
	guess.Merchant = extractMerchant(raw)
	return guess
}

func extractAmount(raw string) (float64, bool) {
	// First tier: a line mentioning a total keyword, last parseable number on it.
	for _, line := range splitLines(raw) {
		if !containsAny(strings.ToUpper(line), totalKeywords) {
			continue
		}
		matches := amountPattern.FindAllString(line, -1)
		for i := len(matches) - 1; i >= 0; i-- {
			if v, ok := parseAmount(matches[i]); ok {
				return v, true
			}
		}
	}

	// Second tier: largest number anywhere in the text.
	var best float64
	found := false
	for _, m := range amountPattern.FindAllString(raw, -1) {
		v, ok := parseAmount(m)
		if !ok {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	return best, found
}

// parseAmount strips commas and parses the remainder as a decimal number.
// Note the comma removal conflates decimal-comma with thousands-comma
// ("5,00" becomes 500 while "5.00" stays 5); inherited behavior, kept as is.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// extractMerchant returns the first line that is not a totals/metadata row,
// not purely numeric, and at least two characters long. Empty when no line
// qualifies.
func extractMerchant(raw string) string {
	for _, line := range splitLines(raw) {
		if containsAny(strings.ToUpper(line), merchantSkipWords) {
			continue
		}
		if containsDigit(line) && !containsLetter(line) {
			continue
		}
		if len([]rune(line)) < 2 {
			continue
		}
		return line
	}
	return ""
}

// splitLines yields trimmed, non-empty lines in original order.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func containsLetter(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter)
}
