package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrSupplierNameExists = errors.New("supplier name already exists")
	ErrSupplierInUse      = errors.New("supplier is referenced by item links or orders")

	ErrTaxConfigNotFound   = errors.New("tax configuration not found")
	ErrTaxConfigCodeExists = errors.New("tax configuration code already exists")

	ErrItemSupplierExists   = errors.New("item is already linked to supplier")
	ErrItemSupplierNotFound = errors.New("item supplier link not found")

	ErrOrderNotFound     = errors.New("purchase order not found")
	ErrOrderLineNotFound = errors.New("purchase order line not found")
	ErrOverReceipt       = errors.New("receipt exceeds outstanding line quantity")
)

type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"unique;not null"`
	TaxID     string
	Email     string
	Phone     string
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TaxConfiguration struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"unique;not null"`
	Description string
	Rate        decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	IsActive    bool            `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemSupplier is the junction between inventory items and suppliers.
// Composite key, restrict policy on item delete.
type ItemSupplier struct {
	ItemID           uint     `gorm:"primaryKey"`
	SupplierID       uint     `gorm:"primaryKey"`
	Supplier         Supplier `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	SupplierItemCode string
	LeadTimeDays     int
	LastPrice        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
}

type PurchaseOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID uint      `gorm:"not null;index"`
	Supplier   Supplier  `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	Status     string    `gorm:"not null"`
	Currency   string    `gorm:"size:3;not null;default:'DOP'"`
	Total      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	OrderedAt  time.Time
	ExpectedAt *time.Time
	Lines      []PurchaseOrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type PurchaseOrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID      uint            `gorm:"not null;index"`
	QtyOrdered  decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	QtyReceived decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0;check:chk_po_lines_received,qty_received <= qty_ordered AND qty_received >= 0"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TaxConfigID *uint
}

type PurchasingDAO struct {
	db *gorm.DB
}

func NewPurchasingDAO(db *gorm.DB) *PurchasingDAO {
	return &PurchasingDAO{
		db: db,
	}
}

// ── Suppliers ─────────────────────────────────────────────────────────────

func (d *PurchasingDAO) InsertSupplier(ctx context.Context, supplier Supplier) (Supplier, error) {
	result := d.db.WithContext(ctx).Create(&supplier)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_suppliers_name"`) {
			return Supplier{}, ErrSupplierNameExists
		}
		return Supplier{}, result.Error
	}
	return supplier, nil
}

func (d *PurchasingDAO) FindSupplierByID(ctx context.Context, id uint) (Supplier, error) {
	var supplier Supplier
	result := d.db.WithContext(ctx).First(&supplier, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Supplier{}, ErrSupplierNotFound
		}
		return Supplier{}, result.Error
	}
	return supplier, nil
}

func (d *PurchasingDAO) FindAllSuppliers(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	result := d.db.WithContext(ctx).Order("id").Find(&suppliers)
	if result.Error != nil {
		return nil, result.Error
	}
	return suppliers, nil
}

func (d *PurchasingDAO) UpdateSupplier(ctx context.Context, supplier Supplier) (Supplier, error) {
	result := d.db.WithContext(ctx).Model(&Supplier{}).
		Where("id = ?", supplier.ID).
		Updates(map[string]interface{}{
			"name":      supplier.Name,
			"tax_id":    supplier.TaxID,
			"email":     supplier.Email,
			"phone":     supplier.Phone,
			"is_active": supplier.IsActive,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_suppliers_name"`) {
			return Supplier{}, ErrSupplierNameExists
		}
		return Supplier{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Supplier{}, ErrSupplierNotFound
	}
	return d.FindSupplierByID(ctx, supplier.ID)
}

func (d *PurchasingDAO) DeleteSupplier(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var links int64
		if err := tx.Model(&ItemSupplier{}).Where("supplier_id = ?", id).Count(&links).Error; err != nil {
			return err
		}
		var orders int64
		if err := tx.Model(&PurchaseOrder{}).Where("supplier_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if links > 0 || orders > 0 {
			return ErrSupplierInUse
		}

		result := tx.Delete(&Supplier{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSupplierNotFound
		}
		return nil
	})
}

// ── Tax configurations ────────────────────────────────────────────────────

func (d *PurchasingDAO) InsertTaxConfig(ctx context.Context, conf TaxConfiguration) (TaxConfiguration, error) {
	result := d.db.WithContext(ctx).Create(&conf)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_tax_configurations_code"`) {
			return TaxConfiguration{}, ErrTaxConfigCodeExists
		}
		return TaxConfiguration{}, result.Error
	}
	return conf, nil
}

func (d *PurchasingDAO) FindTaxConfigByID(ctx context.Context, id uint) (TaxConfiguration, error) {
	var conf TaxConfiguration
	result := d.db.WithContext(ctx).First(&conf, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TaxConfiguration{}, ErrTaxConfigNotFound
		}
		return TaxConfiguration{}, result.Error
	}
	return conf, nil
}

func (d *PurchasingDAO) FindAllTaxConfigs(ctx context.Context) ([]TaxConfiguration, error) {
	var confs []TaxConfiguration
	result := d.db.WithContext(ctx).Order("id").Find(&confs)
	if result.Error != nil {
		return nil, result.Error
	}
	return confs, nil
}

// ── Item supplier links ───────────────────────────────────────────────────

func (d *PurchasingDAO) InsertItemSupplier(ctx context.Context, link ItemSupplier) (ItemSupplier, error) {
	result := d.db.WithContext(ctx).Create(&link)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "item_suppliers_pkey") {
			return ItemSupplier{}, ErrItemSupplierExists
		}
		return ItemSupplier{}, result.Error
	}
	return link, nil
}

func (d *PurchasingDAO) DeleteItemSupplier(ctx context.Context, itemID, supplierID uint) error {
	result := d.db.WithContext(ctx).
		Where("item_id = ? AND supplier_id = ?", itemID, supplierID).
		Delete(&ItemSupplier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemSupplierNotFound
	}
	return nil
}

func (d *PurchasingDAO) FindItemSuppliersByItemID(ctx context.Context, itemID uint) ([]ItemSupplier, error) {
	var links []ItemSupplier
	result := d.db.WithContext(ctx).Where("item_id = ?", itemID).Find(&links)
	if result.Error != nil {
		return nil, result.Error
	}
	return links, nil
}

// ── Purchase orders ───────────────────────────────────────────────────────

func (d *PurchasingDAO) InsertOrder(ctx context.Context, order PurchaseOrder) (PurchaseOrder, error) {
	result := d.db.WithContext(ctx).Create(&order)
	if result.Error != nil {
		return PurchaseOrder{}, result.Error
	}
	return d.FindOrderByID(ctx, order.ID)
}

func (d *PurchasingDAO) FindOrderByID(ctx context.Context, id uuid.UUID) (PurchaseOrder, error) {
	var order PurchaseOrder
	result := d.db.WithContext(ctx).Preload("Lines").First(&order, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PurchaseOrder{}, ErrOrderNotFound
		}
		return PurchaseOrder{}, result.Error
	}
	return order, nil
}

func (d *PurchasingDAO) FindOrdersBySupplierID(ctx context.Context, supplierID uint) ([]PurchaseOrder, error) {
	var orders []PurchaseOrder
	result := d.db.WithContext(ctx).Preload("Lines").
		Where("supplier_id = ?", supplierID).
		Order("ordered_at").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func (d *PurchasingDAO) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := d.db.WithContext(ctx).Model(&PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ReceiveOrderLine books qty against a line with a guard against
// over-receipt, mirroring the stock mutation pattern on items.
func (d *PurchasingDAO) ReceiveOrderLine(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) (PurchaseOrderLine, error) {
	var line PurchaseOrderLine

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&PurchaseOrderLine{}).
			Where("id = ? AND qty_ordered - qty_received >= ?", lineID, qty).
			Update("qty_received", gorm.Expr("qty_received + ?", qty))
		if result.Error != nil {
			if isCheckViolation(result.Error) {
				return ErrOverReceipt
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&PurchaseOrderLine{}).Where("id = ?", lineID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrOrderLineNotFound
			}
			return ErrOverReceipt
		}

		return tx.First(&line, "id = ?", lineID).Error
	})
	if err != nil {
		return PurchaseOrderLine{}, err
	}

	return line, nil
}

// RollbackOrderLineReceipt undoes a booked receipt whose goods never made
// it into stock. The guard keeps qty_received from going negative.
func (d *PurchasingDAO) RollbackOrderLineReceipt(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) error {
	result := d.db.WithContext(ctx).Model(&PurchaseOrderLine{}).
		Where("id = ? AND qty_received >= ?", lineID, qty).
		Update("qty_received", gorm.Expr("qty_received - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderLineNotFound
	}

	return nil
}
