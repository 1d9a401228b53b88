package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category name already exists")
	ErrCategoryInUse      = errors.New("category is referenced by items")

	ErrUnitNotFound     = errors.New("unit of measure not found")
	ErrUnitSymbolExists = errors.New("unit of measure symbol already exists")
	ErrUnitInUse        = errors.New("unit of measure is referenced by items")

	ErrWarehouseNotFound   = errors.New("warehouse not found")
	ErrWarehouseCodeExists = errors.New("warehouse code already exists")

	ErrItemNotFound         = errors.New("item not found")
	ErrItemSKUExists        = errors.New("item SKU already exists")
	ErrItemHasSupplierLinks = errors.New("item is referenced by supplier links")

	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInsufficientReserved = errors.New("insufficient reserved quantity")
	ErrInsufficientStaging  = errors.New("insufficient staging quantity")
)

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type UnitOfMeasure struct {
	ID        uint   `gorm:"primaryKey"`
	Symbol    string `gorm:"unique;not null"` // "BAG", "M3", "TON", "KG", "PIECE", "METER"
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Warehouse struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"unique;not null"`
	Name      string `gorm:"not null"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item carries the stock quantities. The storage layer is the last line of
// defense for the reserved <= on_hand invariant via the CHECK constraint;
// every mutation path must also guard it in its WHERE clause so a racing
// update turns into a rejected change instead of a constraint blowup.
type Item struct {
	ID           uint            `gorm:"primaryKey"`
	SKU          string          `gorm:"unique;not null"`
	Name         string          `gorm:"not null"`
	CategoryID   uint            `gorm:"not null;index"`
	Category     Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	BaseUnitID   uint            `gorm:"not null;index"`
	BaseUnit     UnitOfMeasure   `gorm:"foreignKey:BaseUnitID;constraint:OnDelete:RESTRICT"`
	WarehouseID  *uint           `gorm:"index"`
	LocationCode string          `gorm:"size:30"`
	UnitCost     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	OnHand       decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	Reserved     decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0;check:chk_items_reserved,on_hand >= reserved AND reserved >= 0"`
	Staging      decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0;check:chk_items_staging,staging >= 0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ItemUnitConversion struct {
	ItemID     uint            `gorm:"primaryKey"`
	Item       Item            `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	FromUnitID uint            `gorm:"primaryKey"`
	ToUnitID   uint            `gorm:"primaryKey"`
	Factor     decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}

type StockMovement struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID    uint            `gorm:"not null;index"`
	Type      string          `gorm:"not null"`
	Quantity  decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Reference string
	CreatedAt time.Time
}

type InventoryDAO struct {
	db *gorm.DB
}

func NewInventoryDAO(db *gorm.DB) *InventoryDAO {
	return &InventoryDAO{
		db: db,
	}
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, constraint)
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation
}

// ── Categories ────────────────────────────────────────────────────────────

func (d *InventoryDAO) InsertCategory(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_categories_name"`) {
			return Category{}, ErrCategoryNameExists
		}
		return Category{}, result.Error
	}
	return category, nil
}

func (d *InventoryDAO) FindCategoryByID(ctx context.Context, id uint) (Category, error) {
	var category Category
	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, result.Error
	}
	return category, nil
}

func (d *InventoryDAO) FindAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	result := d.db.WithContext(ctx).Order("id").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (d *InventoryDAO) UpdateCategory(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Model(&Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_categories_name"`) {
			return Category{}, ErrCategoryNameExists
		}
		return Category{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Category{}, ErrCategoryNotFound
	}
	return d.FindCategoryByID(ctx, category.ID)
}

// DeleteCategory rejects the delete while any item still references the
// category (restrict policy).
func (d *InventoryDAO) DeleteCategory(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Item{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}

		result := tx.Delete(&Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// ── Units of measure ──────────────────────────────────────────────────────

func (d *InventoryDAO) InsertUnit(ctx context.Context, unit UnitOfMeasure) (UnitOfMeasure, error) {
	result := d.db.WithContext(ctx).Create(&unit)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_unit_of_measures_symbol"`) {
			return UnitOfMeasure{}, ErrUnitSymbolExists
		}
		return UnitOfMeasure{}, result.Error
	}
	return unit, nil
}

func (d *InventoryDAO) FindUnitByID(ctx context.Context, id uint) (UnitOfMeasure, error) {
	var unit UnitOfMeasure
	result := d.db.WithContext(ctx).First(&unit, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return UnitOfMeasure{}, ErrUnitNotFound
		}
		return UnitOfMeasure{}, result.Error
	}
	return unit, nil
}

func (d *InventoryDAO) FindUnitBySymbol(ctx context.Context, symbol string) (UnitOfMeasure, error) {
	var unit UnitOfMeasure
	result := d.db.WithContext(ctx).First(&unit, "symbol = ?", symbol)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return UnitOfMeasure{}, ErrUnitNotFound
		}
		return UnitOfMeasure{}, result.Error
	}
	return unit, nil
}

func (d *InventoryDAO) FindAllUnits(ctx context.Context) ([]UnitOfMeasure, error) {
	var units []UnitOfMeasure
	result := d.db.WithContext(ctx).Order("id").Find(&units)
	if result.Error != nil {
		return nil, result.Error
	}
	return units, nil
}

func (d *InventoryDAO) UpdateUnit(ctx context.Context, unit UnitOfMeasure) (UnitOfMeasure, error) {
	result := d.db.WithContext(ctx).Model(&UnitOfMeasure{}).
		Where("id = ?", unit.ID).
		Updates(map[string]interface{}{
			"symbol": unit.Symbol,
			"name":   unit.Name,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_unit_of_measures_symbol"`) {
			return UnitOfMeasure{}, ErrUnitSymbolExists
		}
		return UnitOfMeasure{}, result.Error
	}
	if result.RowsAffected == 0 {
		return UnitOfMeasure{}, ErrUnitNotFound
	}
	return d.FindUnitByID(ctx, unit.ID)
}

func (d *InventoryDAO) DeleteUnit(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Item{}).Where("base_unit_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUnitInUse
		}

		result := tx.Delete(&UnitOfMeasure{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUnitNotFound
		}
		return nil
	})
}

// ── Warehouses ────────────────────────────────────────────────────────────

func (d *InventoryDAO) InsertWarehouse(ctx context.Context, warehouse Warehouse) (Warehouse, error) {
	result := d.db.WithContext(ctx).Create(&warehouse)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_warehouses_code"`) {
			return Warehouse{}, ErrWarehouseCodeExists
		}
		return Warehouse{}, result.Error
	}
	return warehouse, nil
}

func (d *InventoryDAO) FindAllWarehouses(ctx context.Context) ([]Warehouse, error) {
	var warehouses []Warehouse
	result := d.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&warehouses)
	if result.Error != nil {
		return nil, result.Error
	}
	return warehouses, nil
}

func (d *InventoryDAO) FindWarehouseByID(ctx context.Context, id uint) (Warehouse, error) {
	var warehouse Warehouse
	result := d.db.WithContext(ctx).First(&warehouse, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Warehouse{}, ErrWarehouseNotFound
		}
		return Warehouse{}, result.Error
	}
	return warehouse, nil
}

// ── Items ─────────────────────────────────────────────────────────────────

func (d *InventoryDAO) InsertItem(ctx context.Context, item Item) (Item, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_items_sku"`) {
			return Item{}, ErrItemSKUExists
		}
		return Item{}, result.Error
	}
	return item, nil
}

func (d *InventoryDAO) FindItemByID(ctx context.Context, id uint) (Item, error) {
	var item Item
	result := d.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, result.Error
	}
	return item, nil
}

func (d *InventoryDAO) FindItemBySKU(ctx context.Context, sku string) (Item, error) {
	var item Item
	result := d.db.WithContext(ctx).First(&item, "sku = ?", sku)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, result.Error
	}
	return item, nil
}

func (d *InventoryDAO) FindAllItems(ctx context.Context) ([]Item, error) {
	var items []Item
	result := d.db.WithContext(ctx).Order("id").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// UpdateItem touches master-data fields only. Stock quantities move solely
// through the guarded stock operations below.
func (d *InventoryDAO) UpdateItem(ctx context.Context, item Item) (Item, error) {
	result := d.db.WithContext(ctx).Model(&Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"sku":           item.SKU,
			"name":          item.Name,
			"category_id":   item.CategoryID,
			"base_unit_id":  item.BaseUnitID,
			"warehouse_id":  item.WarehouseID,
			"location_code": item.LocationCode,
			"unit_cost":     item.UnitCost,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_items_sku"`) {
			return Item{}, ErrItemSKUExists
		}
		return Item{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Item{}, ErrItemNotFound
	}
	return d.FindItemByID(ctx, item.ID)
}

// DeleteItem cascades unit conversions but rejects the delete while
// supplier links exist.
func (d *InventoryDAO) DeleteItem(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var links int64
		if err := tx.Model(&ItemSupplier{}).Where("item_id = ?", id).Count(&links).Error; err != nil {
			return err
		}
		if links > 0 {
			return ErrItemHasSupplierLinks
		}

		if err := tx.Where("item_id = ?", id).Delete(&ItemUnitConversion{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Item{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

// ── Unit conversions ──────────────────────────────────────────────────────

func (d *InventoryDAO) InsertConversion(ctx context.Context, conversion ItemUnitConversion) (ItemUnitConversion, error) {
	result := d.db.WithContext(ctx).Create(&conversion)
	if result.Error != nil {
		return ItemUnitConversion{}, result.Error
	}
	return conversion, nil
}

func (d *InventoryDAO) FindConversionsByItemID(ctx context.Context, itemID uint) ([]ItemUnitConversion, error) {
	var conversions []ItemUnitConversion
	result := d.db.WithContext(ctx).Where("item_id = ?", itemID).Find(&conversions)
	if result.Error != nil {
		return nil, result.Error
	}
	return conversions, nil
}

// ── Stock operations ──────────────────────────────────────────────────────

// mutateStock applies a guarded quantity update and records the movement in
// one transaction. guard is appended to the id match so an unsatisfied
// precondition (or a vanished item) affects zero rows; insufficient tells
// the two cases apart afterwards. A CHECK violation raced past the guard
// still maps to the same sentinel.
func (d *InventoryDAO) mutateStock(
	ctx context.Context,
	itemID uint,
	guard string,
	guardArgs []interface{},
	updates map[string]interface{},
	movementType string,
	qty decimal.Decimal,
	reference string,
	insufficient error,
) (Item, error) {
	var item Item

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&Item{}).Where("id = ?", itemID)
		if guard != "" {
			query = query.Where(guard, guardArgs...)
		}

		result := query.Updates(updates)
		if result.Error != nil {
			if isCheckViolation(result.Error) {
				return insufficient
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Item{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrItemNotFound
			}
			return insufficient
		}

		movement := StockMovement{
			ID:        uuid.New(),
			ItemID:    itemID,
			Type:      movementType,
			Quantity:  qty,
			Reference: reference,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		return tx.First(&item, "id = ?", itemID).Error
	})
	if err != nil {
		return Item{}, err
	}

	return item, nil
}

// Reserve atomically verifies available >= qty and commits qty to reserved.
// Two racing reservations cannot both pass the availability check because
// the check and the increment are one UPDATE.
func (d *InventoryDAO) Reserve(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (Item, error) {
	return d.mutateStock(ctx, itemID,
		"on_hand - reserved >= ?", []interface{}{qty},
		map[string]interface{}{"reserved": gorm.Expr("reserved + ?", qty)},
		"reservation", qty, reference, ErrInsufficientStock)
}

// Release returns previously reserved quantity to available stock.
func (d *InventoryDAO) Release(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (Item, error) {
	return d.mutateStock(ctx, itemID,
		"reserved >= ?", []interface{}{qty},
		map[string]interface{}{"reserved": gorm.Expr("reserved - ?", qty)},
		"release", qty, reference, ErrInsufficientReserved)
}

// Receive books a goods receipt, either straight into on-hand or into the
// staging bucket pending verification.
func (d *InventoryDAO) Receive(ctx context.Context, itemID uint, qty decimal.Decimal, toStaging bool, reference string) (Item, error) {
	if toStaging {
		return d.mutateStock(ctx, itemID,
			"", nil,
			map[string]interface{}{"staging": gorm.Expr("staging + ?", qty)},
			"staging_in", qty, reference, ErrInsufficientStock)
	}
	return d.mutateStock(ctx, itemID,
		"", nil,
		map[string]interface{}{"on_hand": gorm.Expr("on_hand + ?", qty)},
		"receipt", qty, reference, ErrInsufficientStock)
}

// VerifyStaging moves verified quantity from staging to on-hand.
func (d *InventoryDAO) VerifyStaging(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (Item, error) {
	return d.mutateStock(ctx, itemID,
		"staging >= ?", []interface{}{qty},
		map[string]interface{}{
			"staging": gorm.Expr("staging - ?", qty),
			"on_hand": gorm.Expr("on_hand + ?", qty),
		},
		"staging_verified", qty, reference, ErrInsufficientStaging)
}

// Ship consumes a reservation: both on-hand and reserved drop together so
// the invariant holds throughout.
func (d *InventoryDAO) Ship(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (Item, error) {
	return d.mutateStock(ctx, itemID,
		"reserved >= ?", []interface{}{qty},
		map[string]interface{}{
			"on_hand":  gorm.Expr("on_hand - ?", qty),
			"reserved": gorm.Expr("reserved - ?", qty),
		},
		"shipment", qty, reference, ErrInsufficientReserved)
}

func (d *InventoryDAO) FindMovementsByItemID(ctx context.Context, itemID uint) ([]StockMovement, error) {
	var movements []StockMovement
	result := d.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at").
		Find(&movements)
	if result.Error != nil {
		return nil, result.Error
	}
	return movements, nil
}

func (d *InventoryDAO) FindItemsBySKUs(ctx context.Context, skus []string) ([]Item, error) {
	var items []Item
	result := d.db.WithContext(ctx).Where("sku IN ?", skus).Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}
