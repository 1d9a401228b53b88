package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/moduleapi"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository"
)

var (
	ErrAccountNotFound   = repository.ErrAccountNotFound
	ErrAccountNameExists = repository.ErrAccountNameExists
)

type FinanceRepository interface {
	CreateAccount(ctx context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error)
	FindAccountByID(ctx context.Context, id uint) (domain.CustomerAccount, error)
	FindAccountByClientName(ctx context.Context, clientName string) (domain.CustomerAccount, error)
	FindAllAccounts(ctx context.Context) ([]domain.CustomerAccount, error)
	UpdateAccount(ctx context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error)
}

type FinanceService struct {
	repo FinanceRepository
}

func NewFinanceService(repo FinanceRepository) *FinanceService {
	return &FinanceService{
		repo: repo,
	}
}

func (s *FinanceService) CreateAccount(ctx context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error) {
	if account.CreditLimit.IsNegative() {
		return domain.CustomerAccount{}, ErrInvalidQuantity
	}

	created, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		return domain.CustomerAccount{}, fmt.Errorf("s.repo.CreateAccount -> %w", err)
	}
	return created, nil
}

func (s *FinanceService) GetAccount(ctx context.Context, id uint) (domain.CustomerAccount, error) {
	account, err := s.repo.FindAccountByID(ctx, id)
	if err != nil {
		return domain.CustomerAccount{}, fmt.Errorf("s.repo.FindAccountByID -> %w", err)
	}
	return account, nil
}

func (s *FinanceService) ListAccounts(ctx context.Context) ([]domain.CustomerAccount, error) {
	accounts, err := s.repo.FindAllAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllAccounts -> %w", err)
	}
	return accounts, nil
}

func (s *FinanceService) UpdateAccount(ctx context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error) {
	if account.CreditLimit.IsNegative() {
		return domain.CustomerAccount{}, ErrInvalidQuantity
	}

	updated, err := s.repo.UpdateAccount(ctx, account)
	if err != nil {
		return domain.CustomerAccount{}, fmt.Errorf("s.repo.UpdateAccount -> %w", err)
	}
	return updated, nil
}

// CheckCredit approves a charge when the account exists, is active and has
// enough available credit. Unknown clients are declined, not errored, so
// callers can surface the reason to the user.
func (s *FinanceService) CheckCredit(ctx context.Context, req moduleapi.CreditCheckRequest) (moduleapi.CreditCheckResponse, error) {
	account, err := s.repo.FindAccountByClientName(ctx, req.ClientName)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return moduleapi.CreditCheckResponse{
				Approved: false,
				Reason:   "no customer account on file",
			}, nil
		}
		return moduleapi.CreditCheckResponse{}, fmt.Errorf("s.repo.FindAccountByClientName -> %w", err)
	}

	available := account.AvailableCredit()
	resp := moduleapi.CreditCheckResponse{
		AvailableCredit: available,
	}

	switch {
	case !account.IsActive:
		resp.Reason = "account is inactive"
	case available.LessThan(req.Amount):
		resp.Reason = "insufficient credit"
	default:
		resp.Approved = true
	}

	return resp, nil
}

var _ moduleapi.FinanceAPI = (*FinanceService)(nil)
