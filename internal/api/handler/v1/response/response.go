package response

import (
	"fmt"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
)

func notFoundMessage(what, key string, value interface{}) string {
	return fmt.Sprintf("%v with %v (%v) not found", what, key, value)
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// StockResponse is the stock view of an item with the derived available
// quantity materialized for the client.
type StockResponse struct {
	ItemID    uint   `json:"item_id"`
	SKU       string `json:"sku"`
	OnHand    string `json:"on_hand"`
	Reserved  string `json:"reserved"`
	Staging   string `json:"staging"`
	Available string `json:"available"`
}

func NewStockResponse(item domain.Item) StockResponse {
	return StockResponse{
		ItemID:    item.ID,
		SKU:       item.SKU,
		OnHand:    item.OnHand.String(),
		Reserved:  item.Reserved.String(),
		Staging:   item.Staging.String(),
		Available: item.Available().String(),
	}
}

// SeedResponse reports per-table record counts after dev seeding.
type SeedResponse struct {
	Counts map[string]int64 `json:"counts"`
}
