package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/moduleapi"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/service"
)

// fakeInventoryRepo mimics the storage guarantees of the real repository:
// reservation checks and increments happen as one step against the stored
// item, and failed operations leave state untouched.
type fakeInventoryRepo struct {
	items      map[uint]domain.Item
	categories map[uint]domain.Category
	units      map[uint]domain.UnitOfMeasure
	warehouses map[uint]domain.Warehouse
	movements  []domain.StockMovement
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		items:      map[uint]domain.Item{},
		categories: map[uint]domain.Category{},
		units:      map[uint]domain.UnitOfMeasure{},
		warehouses: map[uint]domain.Warehouse{},
	}
}

func (f *fakeInventoryRepo) CreateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	c.ID = uint(len(f.categories) + 1)
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeInventoryRepo) FindCategoryByID(_ context.Context, id uint) (domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return domain.Category{}, service.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeInventoryRepo) FindAllCategories(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeInventoryRepo) UpdateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeInventoryRepo) DeleteCategory(_ context.Context, id uint) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeInventoryRepo) CreateUnit(_ context.Context, u domain.UnitOfMeasure) (domain.UnitOfMeasure, error) {
	u.ID = uint(len(f.units) + 1)
	f.units[u.ID] = u
	return u, nil
}

func (f *fakeInventoryRepo) FindUnitByID(_ context.Context, id uint) (domain.UnitOfMeasure, error) {
	u, ok := f.units[id]
	if !ok {
		return domain.UnitOfMeasure{}, service.ErrUnitNotFound
	}
	return u, nil
}

func (f *fakeInventoryRepo) FindUnitBySymbol(_ context.Context, symbol string) (domain.UnitOfMeasure, error) {
	for _, u := range f.units {
		if u.Symbol == symbol {
			return u, nil
		}
	}
	return domain.UnitOfMeasure{}, service.ErrUnitNotFound
}

func (f *fakeInventoryRepo) FindAllUnits(_ context.Context) ([]domain.UnitOfMeasure, error) {
	var out []domain.UnitOfMeasure
	for _, u := range f.units {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeInventoryRepo) UpdateUnit(_ context.Context, u domain.UnitOfMeasure) (domain.UnitOfMeasure, error) {
	f.units[u.ID] = u
	return u, nil
}

func (f *fakeInventoryRepo) DeleteUnit(_ context.Context, id uint) error {
	delete(f.units, id)
	return nil
}

func (f *fakeInventoryRepo) CreateWarehouse(_ context.Context, w domain.Warehouse) (domain.Warehouse, error) {
	w.ID = uint(len(f.warehouses) + 1)
	f.warehouses[w.ID] = w
	return w, nil
}

func (f *fakeInventoryRepo) FindAllWarehouses(_ context.Context) ([]domain.Warehouse, error) {
	var out []domain.Warehouse
	for _, w := range f.warehouses {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeInventoryRepo) FindWarehouseByID(_ context.Context, id uint) (domain.Warehouse, error) {
	w, ok := f.warehouses[id]
	if !ok {
		return domain.Warehouse{}, service.ErrWarehouseNotFound
	}
	return w, nil
}

func (f *fakeInventoryRepo) CreateItem(_ context.Context, item domain.Item) (domain.Item, error) {
	item.ID = uint(len(f.items) + 1)
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeInventoryRepo) FindItemByID(_ context.Context, id uint) (domain.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.Item{}, service.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeInventoryRepo) FindItemBySKU(_ context.Context, sku string) (domain.Item, error) {
	for _, item := range f.items {
		if item.SKU == sku {
			return item, nil
		}
	}
	return domain.Item{}, service.ErrItemNotFound
}

func (f *fakeInventoryRepo) FindItemsBySKUs(_ context.Context, skus []string) ([]domain.Item, error) {
	var out []domain.Item
	for _, sku := range skus {
		for _, item := range f.items {
			if item.SKU == sku {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) FindAllItems(_ context.Context) ([]domain.Item, error) {
	var out []domain.Item
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeInventoryRepo) UpdateItem(_ context.Context, item domain.Item) (domain.Item, error) {
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeInventoryRepo) DeleteItem(_ context.Context, id uint) error {
	delete(f.items, id)
	return nil
}

func (f *fakeInventoryRepo) CreateConversion(_ context.Context, c domain.ItemUnitConversion) (domain.ItemUnitConversion, error) {
	return c, nil
}

func (f *fakeInventoryRepo) FindConversionsByItemID(_ context.Context, _ uint) ([]domain.ItemUnitConversion, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) record(itemID uint, movementType domain.MovementType, qty decimal.Decimal, reference string) {
	f.movements = append(f.movements, domain.StockMovement{
		ItemID:    itemID,
		Type:      movementType,
		Quantity:  qty,
		Reference: reference,
	})
}

func (f *fakeInventoryRepo) Reserve(_ context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return domain.Item{}, service.ErrItemNotFound
	}
	if item.Available().LessThan(qty) {
		return domain.Item{}, service.ErrInsufficientStock
	}
	item.Reserved = item.Reserved.Add(qty)
	f.items[itemID] = item
	f.record(itemID, domain.MovementReservation, qty, reference)
	return item, nil
}

func (f *fakeInventoryRepo) Release(_ context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return domain.Item{}, service.ErrItemNotFound
	}
	if item.Reserved.LessThan(qty) {
		return domain.Item{}, service.ErrInsufficientReserved
	}
	item.Reserved = item.Reserved.Sub(qty)
	f.items[itemID] = item
	f.record(itemID, domain.MovementRelease, qty, reference)
	return item, nil
}

func (f *fakeInventoryRepo) Receive(_ context.Context, itemID uint, qty decimal.Decimal, toStaging bool, reference string) (domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return domain.Item{}, service.ErrItemNotFound
	}
	if toStaging {
		item.Staging = item.Staging.Add(qty)
		f.record(itemID, domain.MovementStagingIn, qty, reference)
	} else {
		item.OnHand = item.OnHand.Add(qty)
		f.record(itemID, domain.MovementReceipt, qty, reference)
	}
	f.items[itemID] = item
	return item, nil
}

func (f *fakeInventoryRepo) VerifyStaging(_ context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return domain.Item{}, service.ErrItemNotFound
	}
	if item.Staging.LessThan(qty) {
		return domain.Item{}, service.ErrInsufficientStaging
	}
	item.Staging = item.Staging.Sub(qty)
	item.OnHand = item.OnHand.Add(qty)
	f.items[itemID] = item
	f.record(itemID, domain.MovementStagingVerified, qty, reference)
	return item, nil
}

func (f *fakeInventoryRepo) Ship(_ context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return domain.Item{}, service.ErrItemNotFound
	}
	if item.Reserved.LessThan(qty) {
		return domain.Item{}, service.ErrInsufficientReserved
	}
	item.Reserved = item.Reserved.Sub(qty)
	item.OnHand = item.OnHand.Sub(qty)
	f.items[itemID] = item
	f.record(itemID, domain.MovementShipment, qty, reference)
	return item, nil
}

func (f *fakeInventoryRepo) FindMovementsByItemID(_ context.Context, itemID uint) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for _, m := range f.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func seedItem(repo *fakeInventoryRepo, sku string, onHand, reserved int64) domain.Item {
	item, _ := repo.CreateItem(context.Background(), domain.Item{
		SKU:      sku,
		OnHand:   decimal.NewFromInt(onHand),
		Reserved: decimal.NewFromInt(reserved),
	})
	return item
}

func TestInventoryService_ReserveStock(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := service.NewInventoryService(repo)
	item := seedItem(repo, "CEM-42.5-BAG", 500, 0)

	updated, err := svc.ReserveStock(context.Background(), item.ID, decimal.NewFromInt(450), "order-1")
	require.NoError(t, err)
	assert.True(t, updated.Reserved.Equal(decimal.NewFromInt(450)))
	assert.True(t, updated.Available().Equal(decimal.NewFromInt(50)))
}

func TestInventoryService_ReserveStock_Insufficient(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := service.NewInventoryService(repo)
	item := seedItem(repo, "CEM-42.5-BAG", 500, 450)

	_, err := svc.ReserveStock(context.Background(), item.ID, decimal.NewFromInt(100), "order-2")
	assert.ErrorIs(t, err, service.ErrInsufficientStock)

	// Failed reservation must not mutate stock.
	current, err := svc.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, current.OnHand.Equal(decimal.NewFromInt(500)))
	assert.True(t, current.Reserved.Equal(decimal.NewFromInt(450)))
}

func TestInventoryService_ReserveStock_InvalidQuantity(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := service.NewInventoryService(repo)
	item := seedItem(repo, "CEM-42.5-BAG", 500, 0)

	_, err := svc.ReserveStock(context.Background(), item.ID, decimal.Zero, "")
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	_, err = svc.ReserveStock(context.Background(), item.ID, decimal.NewFromInt(-5), "")
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
}

func TestInventoryService_ReserveStock_ItemNotFound(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := service.NewInventoryService(repo)

	_, err := svc.ReserveStock(context.Background(), 999, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestInventoryService_StagingLifecycle(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := service.NewInventoryService(repo)
	item := seedItem(repo, "REB-12MM-PC", 0, 0)

	staged, err := svc.ReceiveStock(context.Background(), item.ID, decimal.NewFromInt(100), true, "po-1")
	require.NoError(t, err)
	assert.True(t, staged.Staging.Equal(decimal.NewFromInt(100)))
	assert.True(t, staged.OnHand.IsZero())

	verified, err := svc.VerifyStagedStock(context.Background(), item.ID, decimal.NewFromInt(60), "qc-1")
	require.NoError(t, err)
	assert.True(t, verified.Staging.Equal(decimal.NewFromInt(40)))
	assert.True(t, verified.OnHand.Equal(decimal.NewFromInt(60)))

	_, err = svc.VerifyStagedStock(context.Background(), item.ID, decimal.NewFromInt(50), "qc-2")
	assert.ErrorIs(t, err, service.ErrInsufficientStaging)
}

func TestInventoryService_ShipStock(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := service.NewInventoryService(repo)
	item := seedItem(repo, "AGG-SAND-M3", 100, 30)

	shipped, err := svc.ShipStock(context.Background(), item.ID, decimal.NewFromInt(30), "order-9")
	require.NoError(t, err)
	assert.True(t, shipped.OnHand.Equal(decimal.NewFromInt(70)))
	assert.True(t, shipped.Reserved.IsZero())

	_, err = svc.ShipStock(context.Background(), item.ID, decimal.NewFromInt(1), "order-9")
	assert.ErrorIs(t, err, service.ErrInsufficientReserved)
}

func TestInventoryService_CheckStockAvailability(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := service.NewInventoryService(repo)
	seedItem(repo, "CEM-42.5-BAG", 500, 450)
	seedItem(repo, "AGG-SAND-M3", 120, 0)

	resp, err := svc.CheckStockAvailability(context.Background(), moduleapi.StockAvailabilityRequest{
		Materials: []moduleapi.MaterialLine{
			{SKU: "CEM-42.5-BAG", Quantity: decimal.NewFromInt(40)},
			{SKU: "AGG-SAND-M3", Quantity: decimal.NewFromInt(100)},
			{SKU: "UNKNOWN-SKU", Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	assert.False(t, resp.Sufficient)
	require.Len(t, resp.Materials, 3)

	assert.True(t, resp.Materials[0].Sufficient)
	assert.True(t, resp.Materials[0].Available.Equal(decimal.NewFromInt(50)))

	assert.True(t, resp.Materials[1].Sufficient)

	// Unknown SKUs report zero availability instead of failing the request.
	assert.False(t, resp.Materials[2].Sufficient)
	assert.True(t, resp.Materials[2].Available.IsZero())
}

func TestInventoryService_CreateItem_ValidatesReferences(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := service.NewInventoryService(repo)

	_, err := svc.CreateItem(context.Background(), domain.Item{SKU: "X", CategoryID: 1, BaseUnitID: 1})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)

	category, _ := repo.CreateCategory(context.Background(), domain.Category{Name: "Cement"})
	_, err = svc.CreateItem(context.Background(), domain.Item{SKU: "X", CategoryID: category.ID, BaseUnitID: 1})
	assert.ErrorIs(t, err, service.ErrUnitNotFound)

	unit, _ := repo.CreateUnit(context.Background(), domain.UnitOfMeasure{Symbol: "BAG"})
	created, err := svc.CreateItem(context.Background(), domain.Item{SKU: "X", CategoryID: category.ID, BaseUnitID: unit.ID})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}
