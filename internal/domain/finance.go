package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerAccount struct {
	ID          uint            `json:"id"`
	ClientName  string          `json:"client_name"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AvailableCredit is limit minus current balance, floored at zero.
func (a *CustomerAccount) AvailableCredit() decimal.Decimal {
	avail := a.CreditLimit.Sub(a.Balance)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}
