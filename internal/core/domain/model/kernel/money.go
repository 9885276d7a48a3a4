package kernel

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every Money value carries.
const MoneyScale int32 = 2

// Money is a non-float monetary amount held at cent precision. Every
// constructor and arithmetic result is rounded half-up (half away from
// zero) to MoneyScale, so sums of Money values reconcile exactly.
//
// Money has no currency; orders are priced in the single platform currency
// and the payment record carries the currency code.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is 0.00.
var ZeroMoney = Money{amount: decimal.Zero}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Round(MoneyScale)}
}

// MoneyFromString parses a decimal literal such as "12.48".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d), nil
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// MulRate multiplies by a rate such as 0.15 and rounds the product.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(rate))
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// String always renders two decimals, e.g. "10.50".
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// MarshalJSON renders the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}
