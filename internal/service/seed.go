package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
)

// SeedService loads a demo dataset for development environments: the
// construction-material unit and category sets, a warehouse, trucks,
// taxonomy entries and a handful of stocked items.
type SeedService struct {
	inventory *InventoryService
	logistics *LogisticsService
	finance   *FinanceService
}

func NewSeedService(inventory *InventoryService, logistics *LogisticsService, finance *FinanceService) *SeedService {
	return &SeedService{
		inventory: inventory,
		logistics: logistics,
		finance:   finance,
	}
}

type seedUnit struct {
	symbol string
	name   string
}

var seedUnits = []seedUnit{
	{"BAG", "Bag"},
	{"M3", "Cubic meter"},
	{"TON", "Metric ton"},
	{"KG", "Kilogram"},
	{"PIECE", "Piece"},
	{"METER", "Meter"},
}

var seedCategories = []string{"Aggregates", "Cement", "Steel", "Rebar", "General"}

// Seed is idempotent at the record level: already-existing rows are
// skipped, not treated as failures, so it can be re-run freely in dev.
func (s *SeedService) Seed(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}

	unitIDs := map[string]uint{}
	for _, u := range seedUnits {
		unit, err := s.inventory.CreateUnit(ctx, domain.UnitOfMeasure{Symbol: u.symbol, Name: u.name})
		if errors.Is(err, ErrUnitSymbolExists) {
			unit, err = s.inventory.repo.FindUnitBySymbol(ctx, u.symbol)
		} else if err == nil {
			counts["units"]++
		}
		if err != nil {
			return nil, fmt.Errorf("seed unit %v -> %w", u.symbol, err)
		}
		unitIDs[u.symbol] = unit.ID
	}

	categoryIDs := map[string]uint{}
	for _, name := range seedCategories {
		category, err := s.inventory.CreateCategory(ctx, domain.Category{Name: name})
		if errors.Is(err, ErrCategoryNameExists) {
			zap.L().Debug("seed category exists", zap.String("name", name))
			existing, findErr := s.findCategoryByName(ctx, name)
			if findErr != nil {
				return nil, findErr
			}
			categoryIDs[name] = existing.ID
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seed category %v -> %w", name, err)
		}
		counts["categories"]++
		categoryIDs[name] = category.ID
	}

	warehouse, err := s.inventory.CreateWarehouse(ctx, domain.Warehouse{Code: "MAIN", Name: "Main yard"})
	switch {
	case errors.Is(err, ErrWarehouseCodeExists):
		warehouse, err = s.findWarehouseByCode(ctx, "MAIN")
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("seed warehouse -> %w", err)
	default:
		counts["warehouses"]++
	}

	type seedItem struct {
		sku      string
		name     string
		category string
		unit     string
		cost     string
		onHand   string
	}
	items := []seedItem{
		{"CEM-42.5-BAG", "Portland cement 42.5 50kg bag", "Cement", "BAG", "8.50", "500"},
		{"AGG-SAND-M3", "Washed river sand", "Aggregates", "M3", "22.00", "120"},
		{"AGG-GRAVEL-M3", "Crushed gravel 3/4", "Aggregates", "M3", "25.00", "80"},
		{"REB-12MM-PC", "Rebar 12mm x 9m", "Rebar", "PIECE", "6.75", "1500"},
		{"STL-BEAM-M", "Structural steel beam", "Steel", "METER", "48.00", "300"},
	}
	for _, it := range items {
		onHand, _ := decimal.NewFromString(it.onHand)
		cost, _ := decimal.NewFromString(it.cost)
		whID := warehouse.ID
		_, err := s.inventory.CreateItem(ctx, domain.Item{
			SKU:         it.sku,
			Name:        it.name,
			CategoryID:  categoryIDs[it.category],
			BaseUnitID:  unitIDs[it.unit],
			WarehouseID: &whID,
			UnitCost:    cost,
			OnHand:      onHand,
		})
		if errors.Is(err, ErrItemSKUExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seed item %v -> %w", it.sku, err)
		}
		counts["items"]++
	}

	trucks := []domain.Truck{
		{LicensePlate: "HLX-001", Type: "flatbed", CapacityKg: decimal.NewFromInt(12000)},
		{LicensePlate: "HLX-002", Type: "mixer", CapacityKg: decimal.NewFromInt(8000)},
		{LicensePlate: "HLX-003", Type: "flatbed", CapacityKg: decimal.NewFromInt(3500)},
	}
	for _, t := range trucks {
		if _, err := s.logistics.CreateTruck(ctx, t); err != nil {
			if errors.Is(err, ErrTruckPlateExists) {
				continue
			}
			return nil, fmt.Errorf("seed truck %v -> %w", t.LicensePlate, err)
		}
		counts["trucks"]++
	}

	taxonomies := []domain.ProductTaxonomy{
		{RawDescription: "cemento gris 50kg", StandardDesc: "Portland cement 42.5 50kg bag", Category: domain.CategoryCement, UnitSymbol: "BAG", WeightFactor: decimal.NewFromInt(50)},
		{RawDescription: "arena lavada", StandardDesc: "Washed river sand", Category: domain.CategoryAggregate, UnitSymbol: "M3", WeightFactor: decimal.NewFromInt(1600)},
		{RawDescription: "varilla 12mm", StandardDesc: "Rebar 12mm x 9m", Category: domain.CategoryRebar, UnitSymbol: "PIECE", WeightFactor: decimal.NewFromFloat(8.0)},
	}
	for _, tx := range taxonomies {
		if _, err := s.logistics.repo.FindTaxonomyByDescription(ctx, tx.RawDescription); err == nil {
			continue
		} else if !errors.Is(err, ErrTaxonomyNotFound) {
			return nil, fmt.Errorf("seed taxonomy %q -> %w", tx.RawDescription, err)
		}
		if _, err := s.logistics.CreateTaxonomy(ctx, tx); err != nil {
			return nil, fmt.Errorf("seed taxonomy %q -> %w", tx.RawDescription, err)
		}
		counts["taxonomies"]++
	}

	accounts := []domain.CustomerAccount{
		{ClientName: "Constructora del Este", CreditLimit: decimal.NewFromInt(50000)},
		{ClientName: "Ferreteria Central", CreditLimit: decimal.NewFromInt(15000)},
	}
	for _, a := range accounts {
		if _, err := s.finance.CreateAccount(ctx, a); err != nil {
			if errors.Is(err, ErrAccountNameExists) {
				continue
			}
			return nil, fmt.Errorf("seed account %v -> %w", a.ClientName, err)
		}
		counts["customer_accounts"]++
	}

	return counts, nil
}

func (s *SeedService) findCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	categories, err := s.inventory.ListCategories(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.Category{}, ErrCategoryNotFound
}

func (s *SeedService) findWarehouseByCode(ctx context.Context, code string) (domain.Warehouse, error) {
	warehouses, err := s.inventory.ListWarehouses(ctx)
	if err != nil {
		return domain.Warehouse{}, err
	}
	for _, w := range warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return domain.Warehouse{}, ErrWarehouseNotFound
}
