package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaxConfiguration struct {
	ID          uint            `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type PurchaseOrderStatus string

const (
	POStatusDraft             PurchaseOrderStatus = "draft"
	POStatusSubmitted         PurchaseOrderStatus = "submitted"
	POStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	POStatusReceived          PurchaseOrderStatus = "received"
	POStatusCancelled         PurchaseOrderStatus = "cancelled"
)

type PurchaseOrder struct {
	ID           uuid.UUID           `json:"id"`
	SupplierID   uint                `json:"supplier_id"`
	Status       PurchaseOrderStatus `json:"status"`
	Currency     string              `json:"currency"`
	Total        decimal.Decimal     `json:"total"`
	OrderedAt    time.Time           `json:"ordered_at"`
	ExpectedAt   *time.Time          `json:"expected_at,omitempty"`
	Lines        []PurchaseOrderLine `json:"lines,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type PurchaseOrderLine struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ItemID      uint            `json:"item_id"`
	QtyOrdered  decimal.Decimal `json:"qty_ordered"`
	QtyReceived decimal.Decimal `json:"qty_received"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxConfigID *uint           `json:"tax_config_id,omitempty"`
}

// Outstanding is the quantity still expected on the line.
func (l *PurchaseOrderLine) Outstanding() decimal.Decimal {
	return l.QtyOrdered.Sub(l.QtyReceived)
}

// CanReceive reports whether the order accepts goods receipts in its
// current status.
func (po *PurchaseOrder) CanReceive() bool {
	return po.Status == POStatusSubmitted || po.Status == POStatusPartiallyReceived
}

// FullyReceived reports whether every line has been received in full.
func (po *PurchaseOrder) FullyReceived() bool {
	for i := range po.Lines {
		if po.Lines[i].Outstanding().IsPositive() {
			return false
		}
	}
	return len(po.Lines) > 0
}
