package models

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits stored for prices.
const MoneyScale = 2

// Money is a decimal(10,2) amount. It reads like a decimal and is always
// written to JSON with two fractional digits, e.g. "15.00".
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(MoneyScale) + `"`), nil
}
