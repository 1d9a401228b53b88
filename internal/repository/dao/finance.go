package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound   = errors.New("customer account not found")
	ErrAccountNameExists = errors.New("customer account already exists for client")
)

type CustomerAccount struct {
	ID          uint            `gorm:"primaryKey"`
	ClientName  string          `gorm:"unique;not null"`
	CreditLimit decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Balance     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	IsActive    bool            `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FinanceDAO struct {
	db *gorm.DB
}

func NewFinanceDAO(db *gorm.DB) *FinanceDAO {
	return &FinanceDAO{
		db: db,
	}
}

func (d *FinanceDAO) InsertAccount(ctx context.Context, account CustomerAccount) (CustomerAccount, error) {
	result := d.db.WithContext(ctx).Create(&account)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_customer_accounts_client_name"`) {
			return CustomerAccount{}, ErrAccountNameExists
		}
		return CustomerAccount{}, result.Error
	}
	return account, nil
}

func (d *FinanceDAO) FindAccountByID(ctx context.Context, id uint) (CustomerAccount, error) {
	var account CustomerAccount
	result := d.db.WithContext(ctx).First(&account, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CustomerAccount{}, ErrAccountNotFound
		}
		return CustomerAccount{}, result.Error
	}
	return account, nil
}

func (d *FinanceDAO) FindAccountByClientName(ctx context.Context, clientName string) (CustomerAccount, error) {
	var account CustomerAccount
	result := d.db.WithContext(ctx).First(&account, "client_name = ?", clientName)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CustomerAccount{}, ErrAccountNotFound
		}
		return CustomerAccount{}, result.Error
	}
	return account, nil
}

func (d *FinanceDAO) FindAllAccounts(ctx context.Context) ([]CustomerAccount, error) {
	var accounts []CustomerAccount
	result := d.db.WithContext(ctx).Order("id").Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accounts, nil
}

func (d *FinanceDAO) UpdateAccount(ctx context.Context, account CustomerAccount) (CustomerAccount, error) {
	result := d.db.WithContext(ctx).Model(&CustomerAccount{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"client_name":  account.ClientName,
			"credit_limit": account.CreditLimit,
			"balance":      account.Balance,
			"is_active":    account.IsActive,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_customer_accounts_client_name"`) {
			return CustomerAccount{}, ErrAccountNameExists
		}
		return CustomerAccount{}, result.Error
	}
	if result.RowsAffected == 0 {
		return CustomerAccount{}, ErrAccountNotFound
	}
	return d.FindAccountByID(ctx, account.ID)
}
