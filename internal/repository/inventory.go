package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository/dao"
)

var (
	ErrCategoryNotFound   = dao.ErrCategoryNotFound
	ErrCategoryNameExists = dao.ErrCategoryNameExists
	ErrCategoryInUse      = dao.ErrCategoryInUse

	ErrUnitNotFound     = dao.ErrUnitNotFound
	ErrUnitSymbolExists = dao.ErrUnitSymbolExists
	ErrUnitInUse        = dao.ErrUnitInUse

	ErrWarehouseNotFound   = dao.ErrWarehouseNotFound
	ErrWarehouseCodeExists = dao.ErrWarehouseCodeExists

	ErrItemNotFound         = dao.ErrItemNotFound
	ErrItemSKUExists        = dao.ErrItemSKUExists
	ErrItemHasSupplierLinks = dao.ErrItemHasSupplierLinks

	ErrInsufficientStock    = dao.ErrInsufficientStock
	ErrInsufficientReserved = dao.ErrInsufficientReserved
	ErrInsufficientStaging  = dao.ErrInsufficientStaging
)

type InventoryDAO interface {
	InsertCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.Category, error)
	FindAllCategories(ctx context.Context) ([]dao.Category, error)
	UpdateCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	InsertUnit(ctx context.Context, unit dao.UnitOfMeasure) (dao.UnitOfMeasure, error)
	FindUnitByID(ctx context.Context, id uint) (dao.UnitOfMeasure, error)
	FindUnitBySymbol(ctx context.Context, symbol string) (dao.UnitOfMeasure, error)
	FindAllUnits(ctx context.Context) ([]dao.UnitOfMeasure, error)
	UpdateUnit(ctx context.Context, unit dao.UnitOfMeasure) (dao.UnitOfMeasure, error)
	DeleteUnit(ctx context.Context, id uint) error

	InsertWarehouse(ctx context.Context, warehouse dao.Warehouse) (dao.Warehouse, error)
	FindAllWarehouses(ctx context.Context) ([]dao.Warehouse, error)
	FindWarehouseByID(ctx context.Context, id uint) (dao.Warehouse, error)

	InsertItem(ctx context.Context, item dao.Item) (dao.Item, error)
	FindItemByID(ctx context.Context, id uint) (dao.Item, error)
	FindItemBySKU(ctx context.Context, sku string) (dao.Item, error)
	FindItemsBySKUs(ctx context.Context, skus []string) ([]dao.Item, error)
	FindAllItems(ctx context.Context) ([]dao.Item, error)
	UpdateItem(ctx context.Context, item dao.Item) (dao.Item, error)
	DeleteItem(ctx context.Context, id uint) error

	InsertConversion(ctx context.Context, conversion dao.ItemUnitConversion) (dao.ItemUnitConversion, error)
	FindConversionsByItemID(ctx context.Context, itemID uint) ([]dao.ItemUnitConversion, error)

	Reserve(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (dao.Item, error)
	Release(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (dao.Item, error)
	Receive(ctx context.Context, itemID uint, qty decimal.Decimal, toStaging bool, reference string) (dao.Item, error)
	VerifyStaging(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (dao.Item, error)
	Ship(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (dao.Item, error)
	FindMovementsByItemID(ctx context.Context, itemID uint) ([]dao.StockMovement, error)
}

type InventoryRepository struct {
	dao InventoryDAO
}

func NewInventoryRepository(dao InventoryDAO) *InventoryRepository {
	return &InventoryRepository{
		dao: dao,
	}
}

// ── Categories ────────────────────────────────────────────────────────────

func (r *InventoryRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := r.dao.InsertCategory(ctx, dao.Category{
		Name:        category.Name,
		Description: category.Description,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}
	return r.categoryDaoToDomain(created), nil
}

func (r *InventoryRepository) FindCategoryByID(ctx context.Context, id uint) (domain.Category, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}
	return r.categoryDaoToDomain(found), nil
}

func (r *InventoryRepository) FindAllCategories(ctx context.Context) ([]domain.Category, error) {
	found, err := r.dao.FindAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllCategories -> %w", err)
	}

	categories := make([]domain.Category, len(found))
	for i, c := range found {
		categories[i] = r.categoryDaoToDomain(c)
	}
	return categories, nil
}

func (r *InventoryRepository) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	updated, err := r.dao.UpdateCategory(ctx, dao.Category{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.UpdateCategory -> %w", err)
	}
	return r.categoryDaoToDomain(updated), nil
}

func (r *InventoryRepository) DeleteCategory(ctx context.Context, id uint) error {
	if err := r.dao.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteCategory -> %w", err)
	}
	return nil
}

// ── Units of measure ──────────────────────────────────────────────────────

func (r *InventoryRepository) CreateUnit(ctx context.Context, unit domain.UnitOfMeasure) (domain.UnitOfMeasure, error) {
	created, err := r.dao.InsertUnit(ctx, dao.UnitOfMeasure{
		Symbol: unit.Symbol,
		Name:   unit.Name,
	})
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("r.dao.InsertUnit -> %w", err)
	}
	return r.unitDaoToDomain(created), nil
}

func (r *InventoryRepository) FindUnitByID(ctx context.Context, id uint) (domain.UnitOfMeasure, error) {
	found, err := r.dao.FindUnitByID(ctx, id)
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("r.dao.FindUnitByID -> %w", err)
	}
	return r.unitDaoToDomain(found), nil
}

func (r *InventoryRepository) FindUnitBySymbol(ctx context.Context, symbol string) (domain.UnitOfMeasure, error) {
	found, err := r.dao.FindUnitBySymbol(ctx, symbol)
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("r.dao.FindUnitBySymbol -> %w", err)
	}
	return r.unitDaoToDomain(found), nil
}

func (r *InventoryRepository) FindAllUnits(ctx context.Context) ([]domain.UnitOfMeasure, error) {
	found, err := r.dao.FindAllUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllUnits -> %w", err)
	}

	units := make([]domain.UnitOfMeasure, len(found))
	for i, u := range found {
		units[i] = r.unitDaoToDomain(u)
	}
	return units, nil
}

func (r *InventoryRepository) UpdateUnit(ctx context.Context, unit domain.UnitOfMeasure) (domain.UnitOfMeasure, error) {
	updated, err := r.dao.UpdateUnit(ctx, dao.UnitOfMeasure{
		ID:     unit.ID,
		Symbol: unit.Symbol,
		Name:   unit.Name,
	})
	if err != nil {
		return domain.UnitOfMeasure{}, fmt.Errorf("r.dao.UpdateUnit -> %w", err)
	}
	return r.unitDaoToDomain(updated), nil
}

func (r *InventoryRepository) DeleteUnit(ctx context.Context, id uint) error {
	if err := r.dao.DeleteUnit(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteUnit -> %w", err)
	}
	return nil
}

// ── Warehouses ────────────────────────────────────────────────────────────

func (r *InventoryRepository) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	created, err := r.dao.InsertWarehouse(ctx, dao.Warehouse{
		Code:     warehouse.Code,
		Name:     warehouse.Name,
		IsActive: true,
	})
	if err != nil {
		return domain.Warehouse{}, fmt.Errorf("r.dao.InsertWarehouse -> %w", err)
	}
	return r.warehouseDaoToDomain(created), nil
}

func (r *InventoryRepository) FindAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	found, err := r.dao.FindAllWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllWarehouses -> %w", err)
	}

	warehouses := make([]domain.Warehouse, len(found))
	for i, w := range found {
		warehouses[i] = r.warehouseDaoToDomain(w)
	}
	return warehouses, nil
}

func (r *InventoryRepository) FindWarehouseByID(ctx context.Context, id uint) (domain.Warehouse, error) {
	found, err := r.dao.FindWarehouseByID(ctx, id)
	if err != nil {
		return domain.Warehouse{}, fmt.Errorf("r.dao.FindWarehouseByID -> %w", err)
	}
	return r.warehouseDaoToDomain(found), nil
}

// ── Items ─────────────────────────────────────────────────────────────────

func (r *InventoryRepository) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := r.dao.InsertItem(ctx, r.itemDomainToDao(item))
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.InsertItem -> %w", err)
	}
	return r.itemDaoToDomain(created), nil
}

func (r *InventoryRepository) FindItemByID(ctx context.Context, id uint) (domain.Item, error) {
	found, err := r.dao.FindItemByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.FindItemByID -> %w", err)
	}
	return r.itemDaoToDomain(found), nil
}

func (r *InventoryRepository) FindItemBySKU(ctx context.Context, sku string) (domain.Item, error) {
	found, err := r.dao.FindItemBySKU(ctx, sku)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.FindItemBySKU -> %w", err)
	}
	return r.itemDaoToDomain(found), nil
}

func (r *InventoryRepository) FindItemsBySKUs(ctx context.Context, skus []string) ([]domain.Item, error) {
	found, err := r.dao.FindItemsBySKUs(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindItemsBySKUs -> %w", err)
	}

	items := make([]domain.Item, len(found))
	for i, it := range found {
		items[i] = r.itemDaoToDomain(it)
	}
	return items, nil
}

func (r *InventoryRepository) FindAllItems(ctx context.Context) ([]domain.Item, error) {
	found, err := r.dao.FindAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllItems -> %w", err)
	}

	items := make([]domain.Item, len(found))
	for i, it := range found {
		items[i] = r.itemDaoToDomain(it)
	}
	return items, nil
}

func (r *InventoryRepository) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	updated, err := r.dao.UpdateItem(ctx, r.itemDomainToDao(item))
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.UpdateItem -> %w", err)
	}
	return r.itemDaoToDomain(updated), nil
}

func (r *InventoryRepository) DeleteItem(ctx context.Context, id uint) error {
	if err := r.dao.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteItem -> %w", err)
	}
	return nil
}

// ── Unit conversions ──────────────────────────────────────────────────────

func (r *InventoryRepository) CreateConversion(ctx context.Context, conversion domain.ItemUnitConversion) (domain.ItemUnitConversion, error) {
	created, err := r.dao.InsertConversion(ctx, dao.ItemUnitConversion{
		ItemID:     conversion.ItemID,
		FromUnitID: conversion.FromUnitID,
		ToUnitID:   conversion.ToUnitID,
		Factor:     conversion.Factor,
	})
	if err != nil {
		return domain.ItemUnitConversion{}, fmt.Errorf("r.dao.InsertConversion -> %w", err)
	}
	return domain.ItemUnitConversion{
		ItemID:     created.ItemID,
		FromUnitID: created.FromUnitID,
		ToUnitID:   created.ToUnitID,
		Factor:     created.Factor,
	}, nil
}

func (r *InventoryRepository) FindConversionsByItemID(ctx context.Context, itemID uint) ([]domain.ItemUnitConversion, error) {
	found, err := r.dao.FindConversionsByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindConversionsByItemID -> %w", err)
	}

	conversions := make([]domain.ItemUnitConversion, len(found))
	for i, c := range found {
		conversions[i] = domain.ItemUnitConversion{
			ItemID:     c.ItemID,
			FromUnitID: c.FromUnitID,
			ToUnitID:   c.ToUnitID,
			Factor:     c.Factor,
		}
	}
	return conversions, nil
}

// ── Stock operations ──────────────────────────────────────────────────────

func (r *InventoryRepository) Reserve(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	item, err := r.dao.Reserve(ctx, itemID, qty, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Reserve -> %w", err)
	}
	return r.itemDaoToDomain(item), nil
}

func (r *InventoryRepository) Release(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	item, err := r.dao.Release(ctx, itemID, qty, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Release -> %w", err)
	}
	return r.itemDaoToDomain(item), nil
}

func (r *InventoryRepository) Receive(ctx context.Context, itemID uint, qty decimal.Decimal, toStaging bool, reference string) (domain.Item, error) {
	item, err := r.dao.Receive(ctx, itemID, qty, toStaging, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Receive -> %w", err)
	}
	return r.itemDaoToDomain(item), nil
}

func (r *InventoryRepository) VerifyStaging(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	item, err := r.dao.VerifyStaging(ctx, itemID, qty, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.VerifyStaging -> %w", err)
	}
	return r.itemDaoToDomain(item), nil
}

func (r *InventoryRepository) Ship(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	item, err := r.dao.Ship(ctx, itemID, qty, reference)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Ship -> %w", err)
	}
	return r.itemDaoToDomain(item), nil
}

func (r *InventoryRepository) FindMovementsByItemID(ctx context.Context, itemID uint) ([]domain.StockMovement, error) {
	found, err := r.dao.FindMovementsByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMovementsByItemID -> %w", err)
	}

	movements := make([]domain.StockMovement, len(found))
	for i, m := range found {
		movements[i] = r.movementDaoToDomain(m)
	}
	return movements, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────

func (r *InventoryRepository) categoryDaoToDomain(c dao.Category) domain.Category {
	return domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *InventoryRepository) unitDaoToDomain(u dao.UnitOfMeasure) domain.UnitOfMeasure {
	return domain.UnitOfMeasure{
		ID:        u.ID,
		Symbol:    u.Symbol,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *InventoryRepository) warehouseDaoToDomain(w dao.Warehouse) domain.Warehouse {
	return domain.Warehouse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func (r *InventoryRepository) itemDomainToDao(i domain.Item) dao.Item {
	return dao.Item{
		ID:           i.ID,
		SKU:          i.SKU,
		Name:         i.Name,
		CategoryID:   i.CategoryID,
		BaseUnitID:   i.BaseUnitID,
		WarehouseID:  i.WarehouseID,
		LocationCode: i.LocationCode,
		UnitCost:     i.UnitCost,
		OnHand:       i.OnHand,
		Reserved:     i.Reserved,
		Staging:      i.Staging,
	}
}

func (r *InventoryRepository) itemDaoToDomain(i dao.Item) domain.Item {
	return domain.Item{
		ID:           i.ID,
		SKU:          i.SKU,
		Name:         i.Name,
		CategoryID:   i.CategoryID,
		BaseUnitID:   i.BaseUnitID,
		WarehouseID:  i.WarehouseID,
		LocationCode: i.LocationCode,
		UnitCost:     i.UnitCost,
		OnHand:       i.OnHand,
		Reserved:     i.Reserved,
		Staging:      i.Staging,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func (r *InventoryRepository) movementDaoToDomain(m dao.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Type:      domain.MovementType(m.Type),
		Quantity:  m.Quantity,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}
