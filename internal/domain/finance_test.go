package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
)

func TestCustomerAccount_AvailableCredit(t *testing.T) {
	account := domain.CustomerAccount{
		CreditLimit: decimal.NewFromInt(10000),
		Balance:     decimal.NewFromInt(3500),
	}
	assert.True(t, account.AvailableCredit().Equal(decimal.NewFromInt(6500)))

	overdrawn := domain.CustomerAccount{
		CreditLimit: decimal.NewFromInt(1000),
		Balance:     decimal.NewFromInt(1500),
	}
	assert.True(t, overdrawn.AvailableCredit().IsZero())
}
