package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/moduleapi"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/service"
)

type fakeFinanceRepo struct {
	accounts map[uint]domain.CustomerAccount
}

func newFakeFinanceRepo() *fakeFinanceRepo {
	return &fakeFinanceRepo{accounts: map[uint]domain.CustomerAccount{}}
}

func (f *fakeFinanceRepo) CreateAccount(_ context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error) {
	account.ID = uint(len(f.accounts) + 1)
	account.IsActive = true
	f.accounts[account.ID] = account
	return account, nil
}

func (f *fakeFinanceRepo) FindAccountByID(_ context.Context, id uint) (domain.CustomerAccount, error) {
	account, ok := f.accounts[id]
	if !ok {
		return domain.CustomerAccount{}, service.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeFinanceRepo) FindAccountByClientName(_ context.Context, clientName string) (domain.CustomerAccount, error) {
	for _, account := range f.accounts {
		if account.ClientName == clientName {
			return account, nil
		}
	}
	return domain.CustomerAccount{}, service.ErrAccountNotFound
}

func (f *fakeFinanceRepo) FindAllAccounts(_ context.Context) ([]domain.CustomerAccount, error) {
	var out []domain.CustomerAccount
	for _, account := range f.accounts {
		out = append(out, account)
	}
	return out, nil
}

func (f *fakeFinanceRepo) UpdateAccount(_ context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error) {
	f.accounts[account.ID] = account
	return account, nil
}

func TestFinanceService_CheckCredit(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := service.NewFinanceService(repo)

	account, err := svc.CreateAccount(context.Background(), domain.CustomerAccount{
		ClientName:  "Constructora del Este",
		CreditLimit: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	account.Balance = decimal.NewFromInt(7000)
	_, err = svc.UpdateAccount(context.Background(), account)
	require.NoError(t, err)

	tests := []struct {
		name     string
		amount   int64
		approved bool
		reason   string
	}{
		{"within available credit", 3000, true, ""},
		{"exactly available credit", 3000, true, ""},
		{"over available credit", 3001, false, "insufficient credit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.CheckCredit(context.Background(), moduleapi.CreditCheckRequest{
				ClientName: "Constructora del Este",
				Amount:     decimal.NewFromInt(tt.amount),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.approved, resp.Approved)
			assert.Equal(t, tt.reason, resp.Reason)
			assert.True(t, resp.AvailableCredit.Equal(decimal.NewFromInt(3000)))
		})
	}
}

func TestFinanceService_CheckCredit_UnknownClient(t *testing.T) {
	svc := service.NewFinanceService(newFakeFinanceRepo())

	resp, err := svc.CheckCredit(context.Background(), moduleapi.CreditCheckRequest{
		ClientName: "Nobody",
		Amount:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.False(t, resp.Approved)
	assert.Equal(t, "no customer account on file", resp.Reason)
}

func TestFinanceService_CheckCredit_InactiveAccount(t *testing.T) {
	repo := newFakeFinanceRepo()
	svc := service.NewFinanceService(repo)

	account, err := svc.CreateAccount(context.Background(), domain.CustomerAccount{
		ClientName:  "Ferreteria Central",
		CreditLimit: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	account.IsActive = false
	_, err = svc.UpdateAccount(context.Background(), account)
	require.NoError(t, err)

	resp, err := svc.CheckCredit(context.Background(), moduleapi.CreditCheckRequest{
		ClientName: "Ferreteria Central",
		Amount:     decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.False(t, resp.Approved)
	assert.Equal(t, "account is inactive", resp.Reason)
}
