// internal/services/money.go
package services

import (
	"github.com/shopspring/decimal"

	"github.com/javajoker/auctionhub-backend/internal/models"
)

// Prices are stored as decimal(10,2).
const moneyScale = models.MoneyScale

var maxMoney = decimal.RequireFromString("99999999.99")

// validMoney reports whether amount is positive, has at most two fractional
// digits and fits the column.
func validMoney(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	if !amount.Equal(amount.Truncate(moneyScale)) {
		return false
	}
	return amount.LessThanOrEqual(maxMoney)
}

// FormatMoney renders an amount as "$15.00".
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(moneyScale)
}
