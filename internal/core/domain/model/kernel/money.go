package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in the store currency.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{amount: decimal.Zero}

// NewMoney wraps amount, rejecting negatives.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money", fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromInt is a shorthand for whole amounts, e.g. MoneyFromInt(50000).
func MoneyFromInt(amount int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount))
}

// MoneyFromString parses a decimal string such as "19.99".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by a line quantity. Quantities are validated as positive by callers.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}
