package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/moduleapi"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository"
)

var (
	ErrCategoryNotFound   = repository.ErrCategoryNotFound
	ErrCategoryNameExists = repository.ErrCategoryNameExists
	ErrCategoryInUse      = repository.ErrCategoryInUse

	ErrUnitNotFound     = repository.ErrUnitNotFound
	ErrUnitSymbolExists = repository.ErrUnitSymbolExists
	ErrUnitInUse        = repository.ErrUnitInUse

	ErrWarehouseNotFound   = repository.ErrWarehouseNotFound
	ErrWarehouseCodeExists = repository.ErrWarehouseCodeExists

	ErrItemNotFound         = repository.ErrItemNotFound
	ErrItemSKUExists        = repository.ErrItemSKUExists
	ErrItemHasSupplierLinks = repository.ErrItemHasSupplierLinks

	ErrInsufficientStock    = repository.ErrInsufficientStock
	ErrInsufficientReserved = repository.ErrInsufficientReserved
	ErrInsufficientStaging  = repository.ErrInsufficientStaging

	ErrInvalidQuantity = errors.New("quantity must be positive")
)

type InventoryRepository interface {
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.Category, error)
	FindAllCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateUnit(ctx context.Context, unit domain.UnitOfMeasure) (domain.UnitOfMeasure, error)
	FindUnitByID(ctx context.Context, id uint) (domain.UnitOfMeasure, error)
	FindUnitBySymbol(ctx context.Context, symbol string) (domain.UnitOfMeasure, error)
	FindAllUnits(ctx context.Context) ([]domain.UnitOfMeasure, error)
	UpdateUnit(ctx context.Context, unit domain.UnitOfMeasure) (domain.UnitOfMeasure, error)
	DeleteUnit(ctx context.Context, id uint) error

	CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	FindAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	FindWarehouseByID(ctx context.Context, id uint) (domain.Warehouse, error)

	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	FindItemByID(ctx context.Context, id uint) (domain.Item, error)
	FindItemBySKU(ctx context.Context, sku string) (domain.Item, error)
	FindItemsBySKUs(ctx context.Context, skus []string) ([]domain.Item, error)
	FindAllItems(ctx context.Context) ([]domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, id uint) error

	CreateConversion(ctx context.Context, conversion domain.ItemUnitConversion) (domain.ItemUnitConversion, error)
	FindConversionsByItemID(ctx context.Context, itemID uint) ([]domain.ItemUnitConversion, error)

	Reserve(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)
	Release(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)
	Receive(ctx context.Context, itemID uint, qty decimal.Decimal, toStaging bool, reference string) (domain.Item, error)
	VerifyStaging(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)
	Ship(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)
	FindMovementsByItemID(ctx context.Context, itemID uint) ([]domain.StockMovement, error)
}

// InventoryService owns item master data and the stock accounting model.
// It also implements moduleapi.InventoryAPI for the other modules.
type InventoryService struct {
	repo InventoryRepository
}

func NewInventoryService(repo InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// ── Categories ────────────────────────────────────────────────────────────

func (s *InventoryService) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}
	return created, nil
}

func (s *InventoryService) GetCategory(ctx context.Context, id uint) (domain.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}
	return category, nil
}

func (s *InventoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.FindAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllCategories -> %w", err)
	}
	return categories, nil
}

func (s *InventoryService) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.UpdateCategory -> %w", err)
	}
	return updated, nil
}

func (s *InventoryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteCategory -> %w", err)
	}
	return nil
}

// ── Units of measure ──────────────────────────────────────────────────────

func (s *InventoryService) CreateUnit(ctx context.Context, unit domain.UnitOfMeasure) (domain.UnitOfMeasure, error) {
	created, err := s.repo.CreateUnit(ctx, unit)
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("s.repo.CreateUnit -> %w", err)
	}
	return created, nil
}

func (s *InventoryService) GetUnit(ctx context.Context, id uint) (domain.UnitOfMeasure, error) {
	unit, err := s.repo.FindUnitByID(ctx, id)
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("s.repo.FindUnitByID -> %w", err)
	}
	return unit, nil
}

func (s *InventoryService) ListUnits(ctx context.Context) ([]domain.UnitOfMeasure, error) {
	units, err := s.repo.FindAllUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllUnits -> %w", err)
	}
	return units, nil
}

func (s *InventoryService) UpdateUnit(ctx context.Context, unit domain.UnitOfMeasure) (domain.UnitOfMeasure, error) {
	updated, err := s.repo.UpdateUnit(ctx, unit)
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("s.repo.UpdateUnit -> %w", err)
	}
	return updated, nil
}

func (s *InventoryService) DeleteUnit(ctx context.Context, id uint) error {
	if err := s.repo.DeleteUnit(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteUnit -> %w", err)
	}
	return nil
}

// ── Warehouses ────────────────────────────────────────────────────────────

func (s *InventoryService) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	created, err := s.repo.CreateWarehouse(ctx, warehouse)
	if err != nil {
		return domain.Warehouse{}, fmt.Errorf("s.repo.CreateWarehouse -> %w", err)
	}
	return created, nil
}

func (s *InventoryService) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	warehouses, err := s.repo.FindAllWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllWarehouses -> %w", err)
	}
	return warehouses, nil
}

// ── Items ─────────────────────────────────────────────────────────────────

func (s *InventoryService) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	if _, err := s.repo.FindCategoryByID(ctx, item.CategoryID); err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}
	if _, err := s.repo.FindUnitByID(ctx, item.BaseUnitID); err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindUnitByID -> %w", err)
	}
	if item.WarehouseID != nil {
		if _, err := s.repo.FindWarehouseByID(ctx, *item.WarehouseID); err != nil {
			return domain.Item{}, fmt.Errorf("s.repo.FindWarehouseByID -> %w", err)
		}
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.CreateItem -> %w", err)
	}
	return created, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id uint) (domain.Item, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindItemByID -> %w", err)
	}
	return item, nil
}

func (s *InventoryService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.FindAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllItems -> %w", err)
	}
	return items, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.UpdateItem -> %w", err)
	}
	return updated, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteItem -> %w", err)
	}
	return nil
}

// ── Unit conversions ──────────────────────────────────────────────────────

func (s *InventoryService) CreateConversion(ctx context.Context, conversion domain.ItemUnitConversion) (domain.ItemUnitConversion, error) {
	if _, err := s.repo.FindItemByID(ctx, conversion.ItemID); err != nil {
		return domain.ItemUnitConversion{}, fmt.Errorf("s.repo.FindItemByID -> %w", err)
	}

	created, err := s.repo.CreateConversion(ctx, conversion)
	if err != nil {
		return domain.ItemUnitConversion{}, fmt.Errorf("s.repo.CreateConversion -> %w", err)
	}
	return created, nil
}

func (s *InventoryService) ListConversions(ctx context.Context, itemID uint) ([]domain.ItemUnitConversion, error) {
	conversions, err := s.repo.FindConversionsByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindConversionsByItemID -> %w", err)
	}
	return conversions, nil
}

// ── Stock operations ──────────────────────────────────────────────────────

// ReserveStock commits qty of an item to an outstanding order. The check
// and the increment are a single atomic storage operation; on failure no
// state changes.
func (s *InventoryService) ReserveStock(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	if !qty.IsPositive() {
		return domain.Item{}, ErrInvalidQuantity
	}

	item, err := s.repo.Reserve(ctx, itemID, qty, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Reserve -> %w", err)
	}
	return item, nil
}

// ReleaseStock returns previously reserved quantity to the available pool.
func (s *InventoryService) ReleaseStock(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	if !qty.IsPositive() {
		return domain.Item{}, ErrInvalidQuantity
	}

	item, err := s.repo.Release(ctx, itemID, qty, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Release -> %w", err)
	}
	return item, nil
}

// ReceiveStock books a goods receipt into staging (pending verification)
// or straight into on-hand.
func (s *InventoryService) ReceiveStock(ctx context.Context, itemID uint, qty decimal.Decimal, toStaging bool, reference string) (domain.Item, error) {
	if !qty.IsPositive() {
		return domain.Item{}, ErrInvalidQuantity
	}

	item, err := s.repo.Receive(ctx, itemID, qty, toStaging, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Receive -> %w", err)
	}
	return item, nil
}

// VerifyStagedStock moves verified quantity from staging into on-hand.
func (s *InventoryService) VerifyStagedStock(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	if !qty.IsPositive() {
		return domain.Item{}, ErrInvalidQuantity
	}

	item, err := s.repo.VerifyStaging(ctx, itemID, qty, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.VerifyStaging -> %w", err)
	}
	return item, nil
}

// ShipStock consumes a reservation, deducting on-hand and reserved together.
func (s *InventoryService) ShipStock(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	if !qty.IsPositive() {
		return domain.Item{}, ErrInvalidQuantity
	}

	item, err := s.repo.Ship(ctx, itemID, qty, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Ship -> %w", err)
	}
	return item, nil
}

func (s *InventoryService) ListMovements(ctx context.Context, itemID uint) ([]domain.StockMovement, error) {
	if _, err := s.repo.FindItemByID(ctx, itemID); err != nil {
		return nil, fmt.Errorf("s.repo.FindItemByID -> %w", err)
	}

	movements, err := s.repo.FindMovementsByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMovementsByItemID -> %w", err)
	}
	return movements, nil
}

// ── Cross-module API ──────────────────────────────────────────────────────

// CheckStockAvailability answers whether the requested materials are
// coverable by current available stock, per line and overall. Unknown SKUs
// report zero availability instead of failing the whole request.
func (s *InventoryService) CheckStockAvailability(ctx context.Context, req moduleapi.StockAvailabilityRequest) (moduleapi.StockAvailabilityResponse, error) {
	skus := make([]string, len(req.Materials))
	for i, m := range req.Materials {
		skus[i] = m.SKU
	}

	items, err := s.repo.FindItemsBySKUs(ctx, skus)
	if err != nil {
		return moduleapi.StockAvailabilityResponse{}, fmt.Errorf("s.repo.FindItemsBySKUs -> %w", err)
	}

	bySKU := make(map[string]domain.Item, len(items))
	for _, item := range items {
		bySKU[item.SKU] = item
	}

	resp := moduleapi.StockAvailabilityResponse{Sufficient: true}
	for _, m := range req.Materials {
		availability := moduleapi.MaterialAvailability{
			SKU:       m.SKU,
			Requested: m.Quantity,
			Available: decimal.Zero,
		}
		if item, ok := bySKU[m.SKU]; ok {
			availability.Available = item.Available()
		}
		availability.Sufficient = availability.Available.GreaterThanOrEqual(m.Quantity)
		if !availability.Sufficient {
			resp.Sufficient = false
		}
		resp.Materials = append(resp.Materials, availability)
	}

	return resp, nil
}

var _ moduleapi.InventoryAPI = (*InventoryService)(nil)
