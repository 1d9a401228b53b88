package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var (
	errNotADecimal        = errors.New("must be a decimal number")
	errNotPositiveDecimal = errors.New("must be a positive decimal number")
	errNegativeDecimal    = errors.New("must not be negative")
)

// Quantities and money travel as strings so precision survives JSON.
func decimalString(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return errNotADecimal
	}
	return nil
}

func positiveDecimalString(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return errNotADecimal
	}
	if !d.IsPositive() {
		return errNotPositiveDecimal
	}
	return nil
}

func nonNegativeDecimalString(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return errNotADecimal
	}
	if d.IsNegative() {
		return errNegativeDecimal
	}
	return nil
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

type CreateUnitRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

func (req *CreateUnitRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Symbol, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
	)
}

type CreateWarehouseRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (req *CreateWarehouseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(2, 20)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

type CreateItemRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	CategoryID   uint   `json:"category_id"`
	BaseUnitID   uint   `json:"base_unit_id"`
	WarehouseID  *uint  `json:"warehouse_id,omitempty"`
	LocationCode string `json:"location_code,omitempty"`
	UnitCost     string `json:"unit_cost"`
	OnHand       string `json:"on_hand,omitempty"`
}

func (req *CreateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SKU, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.CategoryID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.BaseUnitID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.UnitCost, validation.Required, validation.By(nonNegativeDecimalString)),
		validation.Field(&req.OnHand, validation.By(nonNegativeDecimalString)),
	)
}

type UpdateItemRequest struct {
	Name         string `json:"name"`
	WarehouseID  *uint  `json:"warehouse_id,omitempty"`
	LocationCode string `json:"location_code,omitempty"`
	UnitCost     string `json:"unit_cost"`
}

func (req *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.UnitCost, validation.Required, validation.By(nonNegativeDecimalString)),
	)
}

type CreateConversionRequest struct {
	FromUnitID uint   `json:"from_unit_id"`
	ToUnitID   uint   `json:"to_unit_id"`
	Factor     string `json:"factor"`
}

func (req *CreateConversionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FromUnitID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.ToUnitID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Factor, validation.Required, validation.By(positiveDecimalString)),
	)
}

// StockOperationRequest covers reserve, release, verify and ship.
type StockOperationRequest struct {
	Quantity  string `json:"quantity"`
	Reference string `json:"reference,omitempty"`
}

func (req *StockOperationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required, validation.By(positiveDecimalString)),
		validation.Field(&req.Reference, validation.Length(0, 200)),
	)
}

type ReceiveStockRequest struct {
	Quantity  string `json:"quantity"`
	ToStaging bool   `json:"to_staging"`
	Reference string `json:"reference,omitempty"`
}

func (req *ReceiveStockRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required, validation.By(positiveDecimalString)),
		validation.Field(&req.Reference, validation.Length(0, 200)),
	)
}

type MaterialLineRequest struct {
	SKU      string `json:"sku"`
	Quantity string `json:"quantity"`
}

type CheckAvailabilityRequest struct {
	Materials []MaterialLineRequest `json:"materials"`
}

func (req *CheckAvailabilityRequest) Validate() error {
	if len(req.Materials) == 0 {
		return errors.New("materials must not be empty")
	}
	for _, m := range req.Materials {
		err := validation.ValidateStruct(
			&m,
			validation.Field(&m.SKU, validation.Required),
			validation.Field(&m.Quantity, validation.Required, validation.By(positiveDecimalString)),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
