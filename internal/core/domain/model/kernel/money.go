package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/govalues/decimal"
)

// moneyScale is the number of minor-unit digits kept after arithmetic.
const moneyScale = 2

// Money is a non-negative monetary amount used for line item prices, refunds
// and commission reversals. The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney wraps a decimal amount, rejecting negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNeg() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%s is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses amounts such as "19.99" as stored in numeric columns.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.Parse(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(amount)
}

// MustMoney is MoneyFromString for literals known to be valid. It panics otherwise.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	sum, err := m.amount.Add(other.amount)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: sum}, nil
}

// MulQuantity returns m × quantity; quantity must not be negative.
func (m Money) MulQuantity(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	product, err := m.amount.Mul(decimal.MustNew(int64(quantity), 0))
	if err != nil {
		return Money{}, err
	}
	return Money{amount: product}, nil
}

// MulRate returns m × rate rounded half-to-even to two decimal places.
// It is used to size commission amounts from a vendor commission rate.
func (m Money) MulRate(rate decimal.Decimal) (Money, error) {
	product, err := m.amount.Mul(rate)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(product.Round(moneyScale))
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically, so 1.5 equals 1.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Cmp(other.amount) == 0
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.Pad(moneyScale).String()
}
