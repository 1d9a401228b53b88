package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateTruckRequest struct {
	LicensePlate string `json:"license_plate"`
	Type         string `json:"type"`
	CapacityKg   string `json:"capacity_kg"`
}

func (req *CreateTruckRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LicensePlate, validation.Required, validation.Length(2, 20)),
		validation.Field(&req.Type, validation.Required, validation.In("flatbed", "mixer", "dump", "van")),
		validation.Field(&req.CapacityKg, validation.Required, validation.By(positiveDecimalString)),
	)
}

type CreateTaxonomyRequest struct {
	RawDescription string `json:"raw_description"`
	StandardDesc   string `json:"standard_description"`
	Category       string `json:"category"`
	UnitSymbol     string `json:"unit_symbol"`
	WeightFactor   string `json:"weight_factor"`
}

func (req *CreateTaxonomyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RawDescription, validation.Required, validation.Length(2, 300)),
		validation.Field(&req.StandardDesc, validation.Required, validation.Length(2, 300)),
		validation.Field(&req.Category, validation.Required, validation.In("AGGREGATE", "CEMENT", "STEEL", "REBAR", "OTHER")),
		validation.Field(&req.UnitSymbol, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.WeightFactor, validation.Required, validation.By(nonNegativeDecimalString)),
	)
}

type RecordDeliveryRequest struct {
	ClientName         string  `json:"client_name"`
	Address            string  `json:"address"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	TruckID            uint    `json:"truck_id"`
	ItemSKU            string  `json:"item_sku,omitempty"`
	RawDescription     string  `json:"raw_description"`
	Quantity           string  `json:"quantity"`
	RawUnit            string  `json:"raw_unit,omitempty"`
	TotalWeightKg      string  `json:"total_weight_kg,omitempty"`
	ServiceTimeMinutes string  `json:"service_time_minutes,omitempty"`
	ExpertNotes        string  `json:"expert_notes,omitempty"`
	DeliveryDate       string  `json:"delivery_date,omitempty"`
	IngestionBatchID   string  `json:"ingestion_batch_id,omitempty"`
	OrderValue         string  `json:"order_value,omitempty"`
}

func (req *RecordDeliveryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ClientName, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.Address, validation.Required, validation.Length(2, 300)),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.TruckID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.ItemSKU, validation.Length(2, 50)),
		validation.Field(&req.RawDescription, validation.Required, validation.Length(2, 300)),
		validation.Field(&req.Quantity, validation.Required, validation.By(positiveDecimalString)),
		validation.Field(&req.TotalWeightKg, validation.By(nonNegativeDecimalString)),
		validation.Field(&req.ServiceTimeMinutes, validation.By(nonNegativeDecimalString)),
		validation.Field(&req.OrderValue, validation.By(nonNegativeDecimalString)),
	)
}

type SuggestTruckRequest struct {
	TotalWeightKg string `json:"total_weight_kg"`
	TruckType     string `json:"truck_type,omitempty"`
}

func (req *SuggestTruckRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TotalWeightKg, validation.Required, validation.By(positiveDecimalString)),
	)
}

type VerifyTaxonomyRequest struct {
	TaxonomyID string `json:"taxonomy_id"`
}

func (req *VerifyTaxonomyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TaxonomyID, validation.Required, is.UUID),
	)
}
