// Package moduleapi declares the cross-module contracts of the monolith.
// Modules call each other only through these interfaces so the coupling
// surface stays explicit.
package moduleapi

import (
	"context"

	"github.com/shopspring/decimal"
)

type MaterialLine struct {
	SKU      string          `json:"sku"`
	Quantity decimal.Decimal `json:"quantity"`
}

type StockAvailabilityRequest struct {
	Materials []MaterialLine `json:"materials"`
}

type MaterialAvailability struct {
	SKU        string          `json:"sku"`
	Requested  decimal.Decimal `json:"requested"`
	Available  decimal.Decimal `json:"available"`
	Sufficient bool            `json:"sufficient"`
}

type StockAvailabilityResponse struct {
	Sufficient bool                   `json:"sufficient"`
	Materials  []MaterialAvailability `json:"materials"`
}

// InventoryAPI is the stock query surface the inventory module exposes to
// the rest of the monolith.
type InventoryAPI interface {
	CheckStockAvailability(ctx context.Context, req StockAvailabilityRequest) (StockAvailabilityResponse, error)
}

type CreditCheckRequest struct {
	ClientName string          `json:"client_name"`
	Amount     decimal.Decimal `json:"amount"`
}

type CreditCheckResponse struct {
	Approved        bool            `json:"approved"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	Reason          string          `json:"reason,omitempty"`
}

// FinanceAPI answers credit questions for order and delivery flows.
type FinanceAPI interface {
	CheckCredit(ctx context.Context, req CreditCheckRequest) (CreditCheckResponse, error)
}

type TruckSuggestionRequest struct {
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
	TruckType     string          `json:"truck_type,omitempty"`
}

type TruckCandidate struct {
	TruckID      uint            `json:"truck_id"`
	LicensePlate string          `json:"license_plate"`
	Score        decimal.Decimal `json:"score"`
	Utilization  decimal.Decimal `json:"utilization"`
}

type TruckSuggestionResponse struct {
	Suggested  *TruckCandidate  `json:"suggested,omitempty"`
	Candidates []TruckCandidate `json:"candidates"`
}

// LogisticsAPI exposes the truck-assignment heuristic.
type LogisticsAPI interface {
	SuggestTruck(ctx context.Context, req TruckSuggestionRequest) (TruckSuggestionResponse, error)
}
