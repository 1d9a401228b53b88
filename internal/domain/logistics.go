package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Truck struct {
	ID           uint            `json:"id"`
	LicensePlate string          `json:"license_plate"`
	Type         string          `json:"type"`
	CapacityKg   decimal.Decimal `json:"capacity_kg"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ProductCategory string

const (
	CategoryAggregate ProductCategory = "AGGREGATE"
	CategoryCement    ProductCategory = "CEMENT"
	CategorySteel     ProductCategory = "STEEL"
	CategoryRebar     ProductCategory = "REBAR"
	CategoryOther     ProductCategory = "OTHER"
)

// ProductTaxonomy maps free-form product descriptions to a standard
// description, category and weight factor (kg per unit). Entries start
// unverified; an expert confirms them through the verification endpoint.
type ProductTaxonomy struct {
	ID             uuid.UUID       `json:"id"`
	RawDescription string          `json:"raw_description"`
	StandardDesc   string          `json:"standard_description"`
	Category       ProductCategory `json:"category"`
	UnitSymbol     string          `json:"unit_symbol"` // "BAG", "M3", "TON", ...
	WeightFactor   decimal.Decimal `json:"weight_factor"`
	IsVerified     bool            `json:"is_verified"`
	VerifiedBy     *uint           `json:"verified_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Delivery struct {
	ID                 uuid.UUID       `json:"id"`
	ClientName         string          `json:"client_name"`
	Address            string          `json:"address"`
	Latitude           float64         `json:"latitude"`
	Longitude          float64         `json:"longitude"`
	TruckID            uint            `json:"truck_id"`
	TaxonomyID         *uuid.UUID      `json:"taxonomy_id,omitempty"`
	ItemSKU            string          `json:"item_sku,omitempty"`
	RawDescription     string          `json:"raw_description"`
	Quantity           decimal.Decimal `json:"quantity"`
	RawUnit            string          `json:"raw_unit"`
	TotalWeightKg      decimal.Decimal `json:"total_weight_kg"`
	IsWeightCalculated bool            `json:"is_weight_calculated"`
	ServiceTimeMinutes decimal.Decimal `json:"service_time_minutes"`
	ExpertNotes        string          `json:"expert_notes,omitempty"`
	DeliveryDate       time.Time       `json:"delivery_date"`
	IngestionBatchID   string          `json:"ingestion_batch_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TruckSuggestion is a scored candidate from the capacity heuristic.
type TruckSuggestion struct {
	Truck       Truck           `json:"truck"`
	Score       decimal.Decimal `json:"score"`
	Utilization decimal.Decimal `json:"utilization"`
}
