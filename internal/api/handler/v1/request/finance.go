package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateAccountRequest struct {
	ClientName  string `json:"client_name"`
	CreditLimit string `json:"credit_limit"`
}

func (req *CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ClientName, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.CreditLimit, validation.Required, validation.By(nonNegativeDecimalString)),
	)
}

type UpdateAccountRequest struct {
	CreditLimit string `json:"credit_limit"`
	Balance     string `json:"balance"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (req *UpdateAccountRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CreditLimit, validation.Required, validation.By(nonNegativeDecimalString)),
		validation.Field(&req.Balance, validation.Required, validation.By(nonNegativeDecimalString)),
	)
}

type CreditCheckRequest struct {
	ClientName string `json:"client_name"`
	Amount     string `json:"amount"`
}

func (req *CreditCheckRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ClientName, validation.Required),
		validation.Field(&req.Amount, validation.Required, validation.By(positiveDecimalString)),
	)
}
