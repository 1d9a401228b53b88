package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/service"
)

type fakePurchasingRepo struct {
	suppliers  map[uint]domain.Supplier
	taxConfigs map[uint]domain.TaxConfiguration
	links      map[[2]uint]domain.ItemSupplier
	orders     map[uuid.UUID]domain.PurchaseOrder
}

func newFakePurchasingRepo() *fakePurchasingRepo {
	return &fakePurchasingRepo{
		suppliers:  map[uint]domain.Supplier{},
		taxConfigs: map[uint]domain.TaxConfiguration{},
		links:      map[[2]uint]domain.ItemSupplier{},
		orders:     map[uuid.UUID]domain.PurchaseOrder{},
	}
}

func (f *fakePurchasingRepo) CreateSupplier(_ context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	supplier.ID = uint(len(f.suppliers) + 1)
	supplier.IsActive = true
	f.suppliers[supplier.ID] = supplier
	return supplier, nil
}

func (f *fakePurchasingRepo) FindSupplierByID(_ context.Context, id uint) (domain.Supplier, error) {
	supplier, ok := f.suppliers[id]
	if !ok {
		return domain.Supplier{}, service.ErrSupplierNotFound
	}
	return supplier, nil
}

func (f *fakePurchasingRepo) FindAllSuppliers(_ context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	for _, s := range f.suppliers {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakePurchasingRepo) UpdateSupplier(_ context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	f.suppliers[supplier.ID] = supplier
	return supplier, nil
}

func (f *fakePurchasingRepo) DeleteSupplier(_ context.Context, id uint) error {
	delete(f.suppliers, id)
	return nil
}

func (f *fakePurchasingRepo) CreateTaxConfig(_ context.Context, conf domain.TaxConfiguration) (domain.TaxConfiguration, error) {
	conf.ID = uint(len(f.taxConfigs) + 1)
	f.taxConfigs[conf.ID] = conf
	return conf, nil
}

func (f *fakePurchasingRepo) FindTaxConfigByID(_ context.Context, id uint) (domain.TaxConfiguration, error) {
	conf, ok := f.taxConfigs[id]
	if !ok {
		return domain.TaxConfiguration{}, service.ErrTaxConfigNotFound
	}
	return conf, nil
}

func (f *fakePurchasingRepo) FindAllTaxConfigs(_ context.Context) ([]domain.TaxConfiguration, error) {
	var out []domain.TaxConfiguration
	for _, c := range f.taxConfigs {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakePurchasingRepo) LinkItemSupplier(_ context.Context, link domain.ItemSupplier) (domain.ItemSupplier, error) {
	key := [2]uint{link.ItemID, link.SupplierID}
	if _, exists := f.links[key]; exists {
		return domain.ItemSupplier{}, service.ErrItemSupplierExists
	}
	f.links[key] = link
	return link, nil
}

func (f *fakePurchasingRepo) UnlinkItemSupplier(_ context.Context, itemID, supplierID uint) error {
	key := [2]uint{itemID, supplierID}
	if _, exists := f.links[key]; !exists {
		return service.ErrItemSupplierNotFound
	}
	delete(f.links, key)
	return nil
}

func (f *fakePurchasingRepo) FindItemSuppliersByItemID(_ context.Context, itemID uint) ([]domain.ItemSupplier, error) {
	var out []domain.ItemSupplier
	for _, link := range f.links {
		if link.ItemID == itemID {
			out = append(out, link)
		}
	}
	return out, nil
}

func (f *fakePurchasingRepo) CreateOrder(_ context.Context, order domain.PurchaseOrder) (domain.PurchaseOrder, error) {
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakePurchasingRepo) FindOrderByID(_ context.Context, id uuid.UUID) (domain.PurchaseOrder, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.PurchaseOrder{}, service.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakePurchasingRepo) FindOrdersBySupplierID(_ context.Context, supplierID uint) ([]domain.PurchaseOrder, error) {
	var out []domain.PurchaseOrder
	for _, order := range f.orders {
		if order.SupplierID == supplierID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (f *fakePurchasingRepo) UpdateOrderStatus(_ context.Context, id uuid.UUID, status domain.PurchaseOrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return service.ErrOrderNotFound
	}
	order.Status = status
	f.orders[id] = order
	return nil
}

func (f *fakePurchasingRepo) ReceiveOrderLine(_ context.Context, lineID uuid.UUID, qty decimal.Decimal) (domain.PurchaseOrderLine, error) {
	for orderID, order := range f.orders {
		for i := range order.Lines {
			if order.Lines[i].ID != lineID {
				continue
			}
			if order.Lines[i].Outstanding().LessThan(qty) {
				return domain.PurchaseOrderLine{}, service.ErrOverReceipt
			}
			order.Lines[i].QtyReceived = order.Lines[i].QtyReceived.Add(qty)
			f.orders[orderID] = order
			return order.Lines[i], nil
		}
	}
	return domain.PurchaseOrderLine{}, service.ErrOrderLineNotFound
}

func (f *fakePurchasingRepo) RollbackOrderLineReceipt(_ context.Context, lineID uuid.UUID, qty decimal.Decimal) error {
	for orderID, order := range f.orders {
		for i := range order.Lines {
			if order.Lines[i].ID != lineID {
				continue
			}
			order.Lines[i].QtyReceived = order.Lines[i].QtyReceived.Sub(qty)
			f.orders[orderID] = order
			return nil
		}
	}
	return service.ErrOrderLineNotFound
}

// failingReceiptInventory resolves items normally but refuses every
// staging receipt.
type failingReceiptInventory struct {
	*service.InventoryService
	receiveErr error
}

func (f *failingReceiptInventory) ReceiveStock(_ context.Context, _ uint, _ decimal.Decimal, _ bool, _ string) (domain.Item, error) {
	return domain.Item{}, f.receiveErr
}

func newPurchasingFixture(t *testing.T) (*service.PurchasingService, *fakePurchasingRepo, *service.InventoryService, domain.Item, domain.Supplier) {
	t.Helper()

	invRepo := newFakeInventoryRepo()
	inventory := service.NewInventoryService(invRepo)
	item := seedItem(invRepo, "CEM-42.5-BAG", 0, 0)

	repo := newFakePurchasingRepo()
	svc := service.NewPurchasingService(repo, inventory)
	supplier, err := svc.CreateSupplier(context.Background(), domain.Supplier{Name: "Cementos SA"})
	require.NoError(t, err)

	return svc, repo, inventory, item, supplier
}

func TestPurchasingService_CreateOrder(t *testing.T) {
	svc, _, _, item, supplier := newPurchasingFixture(t)

	order, err := svc.CreateOrder(context.Background(), domain.PurchaseOrder{
		SupplierID: supplier.ID,
		Currency:   "USD",
		Lines: []domain.PurchaseOrderLine{
			{ItemID: item.ID, QtyOrdered: decimal.NewFromInt(200), UnitPrice: decimal.RequireFromString("8.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.POStatusDraft, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("1700")), "got total %v", order.Total)
	assert.NotEqual(t, uuid.UUID{}, order.ID)
	require.Len(t, order.Lines, 1)
	assert.NotEqual(t, uuid.UUID{}, order.Lines[0].ID)
}

func TestPurchasingService_CreateOrder_Validation(t *testing.T) {
	svc, _, _, item, supplier := newPurchasingFixture(t)

	_, err := svc.CreateOrder(context.Background(), domain.PurchaseOrder{SupplierID: supplier.ID})
	assert.ErrorIs(t, err, service.ErrOrderHasNoLines)

	_, err = svc.CreateOrder(context.Background(), domain.PurchaseOrder{
		SupplierID: 999,
		Lines:      []domain.PurchaseOrderLine{{ItemID: item.ID, QtyOrdered: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, service.ErrSupplierNotFound)

	_, err = svc.CreateOrder(context.Background(), domain.PurchaseOrder{
		SupplierID: supplier.ID,
		Lines:      []domain.PurchaseOrderLine{{ItemID: 999, QtyOrdered: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, service.ErrItemNotFound)

	_, err = svc.CreateOrder(context.Background(), domain.PurchaseOrder{
		SupplierID: supplier.ID,
		Lines:      []domain.PurchaseOrderLine{{ItemID: item.ID, QtyOrdered: decimal.Zero}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
}

func TestPurchasingService_ReceiveOrderLine_Lifecycle(t *testing.T) {
	svc, _, inventory, item, supplier := newPurchasingFixture(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, domain.PurchaseOrder{
		SupplierID: supplier.ID,
		Currency:   "USD",
		Lines: []domain.PurchaseOrderLine{
			{ItemID: item.ID, QtyOrdered: decimal.NewFromInt(100), UnitPrice: decimal.RequireFromString("8.50")},
		},
	})
	require.NoError(t, err)
	lineID := order.Lines[0].ID

	// Draft orders cannot receive goods.
	_, err = svc.ReceiveOrderLine(ctx, order.ID, lineID, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, service.ErrOrderNotReceivable)

	order, err = svc.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusSubmitted, order.Status)

	order, err = svc.ReceiveOrderLine(ctx, order.ID, lineID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusPartiallyReceived, order.Status)

	// Goods land in staging pending verification.
	current, err := inventory.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, current.Staging.Equal(decimal.NewFromInt(40)))
	assert.True(t, current.OnHand.IsZero())

	order, err = svc.ReceiveOrderLine(ctx, order.ID, lineID, decimal.NewFromInt(60))
	require.NoError(t, err)
	assert.Equal(t, domain.POStatusReceived, order.Status)

	_, err = svc.ReceiveOrderLine(ctx, order.ID, lineID, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, service.ErrOrderNotReceivable)
}

func TestPurchasingService_ReceiveOrderLine_OverReceipt(t *testing.T) {
	svc, _, _, item, supplier := newPurchasingFixture(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, domain.PurchaseOrder{
		SupplierID: supplier.ID,
		Currency:   "USD",
		Lines: []domain.PurchaseOrderLine{
			{ItemID: item.ID, QtyOrdered: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	_, err = svc.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.ReceiveOrderLine(ctx, order.ID, order.Lines[0].ID, decimal.NewFromInt(51))
	assert.ErrorIs(t, err, service.ErrOverReceipt)
}

func TestPurchasingService_ReceiveOrderLine_RollsBackWhenStagingFails(t *testing.T) {
	ctx := context.Background()

	invRepo := newFakeInventoryRepo()
	inventory := service.NewInventoryService(invRepo)
	item := seedItem(invRepo, "CEM-42.5-BAG", 0, 0)

	repo := newFakePurchasingRepo()
	svc := service.NewPurchasingService(repo, &failingReceiptInventory{
		InventoryService: inventory,
		receiveErr:       errors.New("stock movement write failed"),
	})

	supplier, err := svc.CreateSupplier(ctx, domain.Supplier{Name: "Cementos SA"})
	require.NoError(t, err)

	order, err := svc.CreateOrder(ctx, domain.PurchaseOrder{
		SupplierID: supplier.ID,
		Currency:   "USD",
		Lines: []domain.PurchaseOrderLine{
			{ItemID: item.ID, QtyOrdered: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	_, err = svc.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.ReceiveOrderLine(ctx, order.ID, order.Lines[0].ID, decimal.NewFromInt(4))
	require.Error(t, err)

	// The booked quantity must not stick when no stock was staged.
	current, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, current.Lines[0].QtyReceived.IsZero(), "got qty_received %v", current.Lines[0].QtyReceived)
	assert.Equal(t, domain.POStatusSubmitted, current.Status)
}

func TestPurchasingService_SubmitOrder_OnlyFromDraft(t *testing.T) {
	svc, _, _, item, supplier := newPurchasingFixture(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, domain.PurchaseOrder{
		SupplierID: supplier.ID,
		Currency:   "USD",
		Lines: []domain.PurchaseOrderLine{
			{ItemID: item.ID, QtyOrdered: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	_, err = svc.SubmitOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.SubmitOrder(ctx, order.ID)
	assert.ErrorIs(t, err, service.ErrOrderNotDraft)
}

func TestPurchasingService_LinkItemSupplier(t *testing.T) {
	svc, _, _, item, supplier := newPurchasingFixture(t)
	ctx := context.Background()

	link, err := svc.LinkItemSupplier(ctx, domain.ItemSupplier{
		ItemID:     item.ID,
		SupplierID: supplier.ID,
		LastPrice:  decimal.RequireFromString("8.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, item.ID, link.ItemID)

	_, err = svc.LinkItemSupplier(ctx, domain.ItemSupplier{ItemID: item.ID, SupplierID: supplier.ID})
	assert.ErrorIs(t, err, service.ErrItemSupplierExists)

	_, err = svc.LinkItemSupplier(ctx, domain.ItemSupplier{ItemID: 999, SupplierID: supplier.ID})
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}
