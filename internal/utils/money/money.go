// Package money holds amount validation and formatting helpers for whole-VND
// amounts. VND has no minor unit, so every valid amount is an arbitrary
// precision signed integer; decimal.Decimal is used as the carrier type and
// these helpers enforce integrality at the boundary.
package money

import (
	"fmt"
	"strings"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ValidateAmount checks that an amount is a whole number of dong.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsInteger() {
		return fmt.Errorf("%w: amount must be a whole number of dong", apperrors.ErrValidation)
	}
	return nil
}

// ValidatePositiveAmount checks that an amount is a strictly positive whole
// number of dong. Every mutating ledger operation takes its amount through
// this check before any persistence attempt.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

// FormatVND renders an amount with dot thousand separators and the dong sign,
// e.g. -1234567 -> "-1.234.567 ₫".
func FormatVND(amount decimal.Decimal) string {
	digits := amount.Abs().String()
	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	b.WriteString(" ₫")
	return b.String()
}
