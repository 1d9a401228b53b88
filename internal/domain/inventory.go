package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UnitOfMeasure struct {
	ID        uint      `json:"id"`
	Symbol    string    `json:"symbol"` // "BAG", "M3", "TON", "KG", "PIECE", "METER"
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Warehouse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is the inventory master record plus its stock accounting fields.
// Available quantity is derived, never stored.
type Item struct {
	ID           uint            `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CategoryID   uint            `json:"category_id"`
	BaseUnitID   uint            `json:"base_unit_id"`
	WarehouseID  *uint           `json:"warehouse_id,omitempty"`
	LocationCode string          `json:"location_code,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	OnHand       decimal.Decimal `json:"on_hand"`
	Reserved     decimal.Decimal `json:"reserved"`
	Staging      decimal.Decimal `json:"staging"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Available is on-hand minus reserved.
func (i *Item) Available() decimal.Decimal {
	return i.OnHand.Sub(i.Reserved)
}

// CanReserve reports whether qty could be reserved against current stock.
// The authoritative check happens in the storage layer; this is for
// pre-flight answers like stock-availability lookups.
func (i *Item) CanReserve(qty decimal.Decimal) bool {
	return qty.IsPositive() && i.Available().GreaterThanOrEqual(qty)
}

type ItemUnitConversion struct {
	ItemID     uint            `json:"item_id"`
	FromUnitID uint            `json:"from_unit_id"`
	ToUnitID   uint            `json:"to_unit_id"`
	Factor     decimal.Decimal `json:"factor"`
}

type ItemSupplier struct {
	ItemID           uint            `json:"item_id"`
	SupplierID       uint            `json:"supplier_id"`
	SupplierItemCode string          `json:"supplier_item_code"`
	LeadTimeDays     int             `json:"lead_time_days"`
	LastPrice        decimal.Decimal `json:"last_price"`
}

type MovementType string

const (
	MovementReceipt         MovementType = "receipt"
	MovementReservation     MovementType = "reservation"
	MovementRelease         MovementType = "release"
	MovementStagingIn       MovementType = "staging_in"
	MovementStagingVerified MovementType = "staging_verified"
	MovementShipment        MovementType = "shipment"
)

// StockMovement is the append-only audit trail of stock mutations.
type StockMovement struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uint            `json:"item_id"`
	Type      MovementType    `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
