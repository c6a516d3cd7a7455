package money_test

import (
	"testing"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidatePositiveAmount(t *testing.T) {
	testCases := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{name: "positive integer", amount: "150000", wantErr: false},
		{name: "one dong", amount: "1", wantErr: false},
		{name: "very large amount", amount: "123456789012345678901234567890", wantErr: false},
		{name: "zero", amount: "0", wantErr: true},
		{name: "negative", amount: "-5000", wantErr: true},
		{name: "fractional", amount: "1000.5", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			assert.NoError(t, err)

			err = money.ValidatePositiveAmount(amount)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatVND(t *testing.T) {
	testCases := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "0 ₫"},
		{amount: "500", want: "500 ₫"},
		{amount: "150000", want: "150.000 ₫"},
		{amount: "1234567", want: "1.234.567 ₫"},
		{amount: "-1234567", want: "-1.234.567 ₫"},
		{amount: "1000000000", want: "1.000.000.000 ₫"},
	}

	for _, tc := range testCases {
		t.Run(tc.amount, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, money.FormatVND(amount))
		})
	}
}
