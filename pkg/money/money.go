// Package money provides the monetary primitives used across the ledger.
// Amounts are always integers in the smallest currency unit; the package
// never represents fractional amounts, so summing any number of amounts is
// exact and order-independent.
package money

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCurrencyCode is returned when a currency code is not a valid
// ISO 4217 code (3 uppercase letters).
var ErrInvalidCurrencyCode = errors.New("invalid currency code")

// Amount is a monetary amount in the smallest currency unit (e.g. cents for
// USD, whole rupiah for IDR).
type Amount = int64

// Code is an ISO 4217 currency code.
type Code string

// Currency codes the system is commonly deployed with.
const (
	IDR Code = "IDR"
	USD Code = "USD"

	// DefaultCurrency is used when no currency is configured.
	DefaultCurrency = IDR
)

// IsValidFormat reports whether s has the shape of an ISO 4217 code.
func IsValidFormat(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ParseCode validates s and returns it as a Code.
func ParseCode(s string) (Code, error) {
	if !IsValidFormat(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, s)
	}
	return Code(s), nil
}

// Format renders an amount with thousands separators and the currency code,
// e.g. Format(12000000, IDR) == "IDR 12,000,000". Intended for logs and CLI
// reports; API responses carry raw integer amounts.
func Format(a Amount, c Code) string {
	neg := a < 0
	if neg {
		a = -a
	}
	digits := fmt.Sprintf("%d", a)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s", c, sign, b.String())
}
