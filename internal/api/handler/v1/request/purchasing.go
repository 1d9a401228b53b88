package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateSupplierRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (req *CreateSupplierRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 30)),
	)
}

type UpdateSupplierRequest struct {
	Name     string `json:"name"`
	TaxID    string `json:"tax_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (req *UpdateSupplierRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 30)),
	)
}

type CreateTaxConfigRequest struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Rate        string `json:"rate"`
}

func (req *CreateTaxConfigRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(2, 20)),
		validation.Field(&req.Description, validation.Length(0, 200)),
		validation.Field(&req.Rate, validation.Required, validation.By(nonNegativeDecimalString)),
	)
}

type LinkItemSupplierRequest struct {
	ItemID           uint   `json:"item_id"`
	SupplierID       uint   `json:"supplier_id"`
	SupplierItemCode string `json:"supplier_item_code,omitempty"`
	LeadTimeDays     int    `json:"lead_time_days"`
	LastPrice        string `json:"last_price,omitempty"`
}

func (req *LinkItemSupplierRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ItemID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.SupplierID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.LeadTimeDays, validation.Min(0)),
		validation.Field(&req.LastPrice, validation.By(nonNegativeDecimalString)),
	)
}

type OrderLineRequest struct {
	ItemID      uint   `json:"item_id"`
	QtyOrdered  string `json:"qty_ordered"`
	UnitPrice   string `json:"unit_price"`
	TaxConfigID *uint  `json:"tax_config_id,omitempty"`
}

type CreateOrderRequest struct {
	SupplierID uint               `json:"supplier_id"`
	Currency   string             `json:"currency"`
	ExpectedAt string             `json:"expected_at,omitempty"`
	Lines      []OrderLineRequest `json:"lines"`
}

func (req *CreateOrderRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.SupplierID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Currency, validation.Required, validation.Length(3, 3)),
	)
	if err != nil {
		return err
	}

	if len(req.Lines) == 0 {
		return errors.New("order must have at least one line")
	}
	for _, line := range req.Lines {
		err = validation.ValidateStruct(
			&line,
			validation.Field(&line.ItemID, validation.Required, validation.Min(uint(1))),
			validation.Field(&line.QtyOrdered, validation.Required, validation.By(positiveDecimalString)),
			validation.Field(&line.UnitPrice, validation.Required, validation.By(nonNegativeDecimalString)),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

type ReceiveOrderLineRequest struct {
	LineID   string `json:"line_id"`
	Quantity string `json:"quantity"`
}

func (req *ReceiveOrderLineRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LineID, validation.Required, is.UUID),
		validation.Field(&req.Quantity, validation.Required, validation.By(positiveDecimalString)),
	)
}
