package repository

import (
	"context"
	"fmt"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository/dao"
)

var (
	ErrAccountNotFound   = dao.ErrAccountNotFound
	ErrAccountNameExists = dao.ErrAccountNameExists
)

type FinanceDAO interface {
	InsertAccount(ctx context.Context, account dao.CustomerAccount) (dao.CustomerAccount, error)
	FindAccountByID(ctx context.Context, id uint) (dao.CustomerAccount, error)
	FindAccountByClientName(ctx context.Context, clientName string) (dao.CustomerAccount, error)
	FindAllAccounts(ctx context.Context) ([]dao.CustomerAccount, error)
	UpdateAccount(ctx context.Context, account dao.CustomerAccount) (dao.CustomerAccount, error)
}

type FinanceRepository struct {
	dao FinanceDAO
}

func NewFinanceRepository(dao FinanceDAO) *FinanceRepository {
	return &FinanceRepository{
		dao: dao,
	}
}

func (r *FinanceRepository) CreateAccount(ctx context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error) {
	created, err := r.dao.InsertAccount(ctx, dao.CustomerAccount{
		ClientName:  account.ClientName,
		CreditLimit: account.CreditLimit,
		Balance:     account.Balance,
		IsActive:    true,
	})
	if err != nil {
		return domain.CustomerAccount{}, fmt.Errorf("r.dao.InsertAccount -> %w", err)
	}
	return r.accountDaoToDomain(created), nil
}

func (r *FinanceRepository) FindAccountByID(ctx context.Context, id uint) (domain.CustomerAccount, error) {
	found, err := r.dao.FindAccountByID(ctx, id)
	if err != nil {
		return domain.CustomerAccount{}, fmt.Errorf("r.dao.FindAccountByID -> %w", err)
	}
	return r.accountDaoToDomain(found), nil
}

func (r *FinanceRepository) FindAccountByClientName(ctx context.Context, clientName string) (domain.CustomerAccount, error) {
	found, err := r.dao.FindAccountByClientName(ctx, clientName)
	if err != nil {
		return domain.CustomerAccount{}, fmt.Errorf("r.dao.FindAccountByClientName -> %w", err)
	}
	return r.accountDaoToDomain(found), nil
}

func (r *FinanceRepository) FindAllAccounts(ctx context.Context) ([]domain.CustomerAccount, error) {
	found, err := r.dao.FindAllAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllAccounts -> %w", err)
	}

	accounts := make([]domain.CustomerAccount, len(found))
	for i, a := range found {
		accounts[i] = r.accountDaoToDomain(a)
	}
	return accounts, nil
}

func (r *FinanceRepository) UpdateAccount(ctx context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error) {
	updated, err := r.dao.UpdateAccount(ctx, dao.CustomerAccount{
		ID:          account.ID,
		ClientName:  account.ClientName,
		CreditLimit: account.CreditLimit,
		Balance:     account.Balance,
		IsActive:    account.IsActive,
	})
	if err != nil {
		return domain.CustomerAccount{}, fmt.Errorf("r.dao.UpdateAccount -> %w", err)
	}
	return r.accountDaoToDomain(updated), nil
}

func (r *FinanceRepository) accountDaoToDomain(a dao.CustomerAccount) domain.CustomerAccount {
	return domain.CustomerAccount{
		ID:          a.ID,
		ClientName:  a.ClientName,
		CreditLimit: a.CreditLimit,
		Balance:     a.Balance,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
