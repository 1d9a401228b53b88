package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/moduleapi"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/service"
)

type fakeLogisticsRepo struct {
	trucks     map[uint]domain.Truck
	taxonomies map[uuid.UUID]domain.ProductTaxonomy
	deliveries map[uuid.UUID]domain.Delivery
}

func newFakeLogisticsRepo() *fakeLogisticsRepo {
	return &fakeLogisticsRepo{
		trucks:     map[uint]domain.Truck{},
		taxonomies: map[uuid.UUID]domain.ProductTaxonomy{},
		deliveries: map[uuid.UUID]domain.Delivery{},
	}
}

func (f *fakeLogisticsRepo) CreateTruck(_ context.Context, truck domain.Truck) (domain.Truck, error) {
	truck.ID = uint(len(f.trucks) + 1)
	truck.IsActive = true
	f.trucks[truck.ID] = truck
	return truck, nil
}

func (f *fakeLogisticsRepo) FindTruckByID(_ context.Context, id uint) (domain.Truck, error) {
	truck, ok := f.trucks[id]
	if !ok {
		return domain.Truck{}, service.ErrTruckNotFound
	}
	return truck, nil
}

func (f *fakeLogisticsRepo) FindActiveTrucks(_ context.Context) ([]domain.Truck, error) {
	var out []domain.Truck
	for _, truck := range f.trucks {
		if truck.IsActive {
			out = append(out, truck)
		}
	}
	return out, nil
}

func (f *fakeLogisticsRepo) CreateTaxonomy(_ context.Context, taxonomy domain.ProductTaxonomy) (domain.ProductTaxonomy, error) {
	f.taxonomies[taxonomy.ID] = taxonomy
	return taxonomy, nil
}

func (f *fakeLogisticsRepo) FindTaxonomyByID(_ context.Context, id uuid.UUID) (domain.ProductTaxonomy, error) {
	taxonomy, ok := f.taxonomies[id]
	if !ok {
		return domain.ProductTaxonomy{}, service.ErrTaxonomyNotFound
	}
	return taxonomy, nil
}

func (f *fakeLogisticsRepo) FindTaxonomyByDescription(_ context.Context, rawDescription string) (domain.ProductTaxonomy, error) {
	// Verified entries win over unverified ones, like the real query.
	var found *domain.ProductTaxonomy
	for _, taxonomy := range f.taxonomies {
		if taxonomy.RawDescription != rawDescription {
			continue
		}
		t := taxonomy
		if found == nil || (t.IsVerified && !found.IsVerified) {
			found = &t
		}
	}
	if found == nil {
		return domain.ProductTaxonomy{}, service.ErrTaxonomyNotFound
	}
	return *found, nil
}

func (f *fakeLogisticsRepo) FindAllTaxonomies(_ context.Context) ([]domain.ProductTaxonomy, error) {
	var out []domain.ProductTaxonomy
	for _, taxonomy := range f.taxonomies {
		out = append(out, taxonomy)
	}
	return out, nil
}

func (f *fakeLogisticsRepo) VerifyTaxonomy(_ context.Context, id uuid.UUID, verifiedBy uint) (domain.ProductTaxonomy, error) {
	taxonomy, ok := f.taxonomies[id]
	if !ok {
		return domain.ProductTaxonomy{}, service.ErrTaxonomyNotFound
	}
	taxonomy.IsVerified = true
	taxonomy.VerifiedBy = &verifiedBy
	f.taxonomies[id] = taxonomy
	return taxonomy, nil
}

func (f *fakeLogisticsRepo) CreateDelivery(_ context.Context, delivery domain.Delivery) (domain.Delivery, error) {
	f.deliveries[delivery.ID] = delivery
	return delivery, nil
}

func (f *fakeLogisticsRepo) FindDeliveryByID(_ context.Context, id uuid.UUID) (domain.Delivery, error) {
	delivery, ok := f.deliveries[id]
	if !ok {
		return domain.Delivery{}, service.ErrDeliveryNotFound
	}
	return delivery, nil
}

func (f *fakeLogisticsRepo) FindDeliveries(_ context.Context, clientName string, _, _ int) ([]domain.Delivery, error) {
	var out []domain.Delivery
	for _, delivery := range f.deliveries {
		if clientName == "" || delivery.ClientName == clientName {
			out = append(out, delivery)
		}
	}
	return out, nil
}

type fakeFinanceAPI struct {
	approved bool
	calls    []moduleapi.CreditCheckRequest
}

func (f *fakeFinanceAPI) CheckCredit(_ context.Context, req moduleapi.CreditCheckRequest) (moduleapi.CreditCheckResponse, error) {
	f.calls = append(f.calls, req)
	return moduleapi.CreditCheckResponse{Approved: f.approved}, nil
}

type fakeInventoryAPI struct {
	sufficient bool
	calls      []moduleapi.StockAvailabilityRequest
}

func (f *fakeInventoryAPI) CheckStockAvailability(_ context.Context, req moduleapi.StockAvailabilityRequest) (moduleapi.StockAvailabilityResponse, error) {
	f.calls = append(f.calls, req)

	resp := moduleapi.StockAvailabilityResponse{Sufficient: f.sufficient}
	for _, m := range req.Materials {
		resp.Materials = append(resp.Materials, moduleapi.MaterialAvailability{
			SKU:        m.SKU,
			Requested:  m.Quantity,
			Sufficient: f.sufficient,
		})
	}
	return resp, nil
}

func newLogisticsFixture(t *testing.T, approved bool) (*service.LogisticsService, *fakeLogisticsRepo, *fakeInventoryAPI, *fakeFinanceAPI) {
	t.Helper()
	repo := newFakeLogisticsRepo()
	inventory := &fakeInventoryAPI{sufficient: true}
	finance := &fakeFinanceAPI{approved: approved}
	return service.NewLogisticsService(repo, inventory, finance), repo, inventory, finance
}

func TestLogisticsService_RecordDelivery_CalculatesWeightFromVerifiedTaxonomy(t *testing.T) {
	svc, repo, _, _ := newLogisticsFixture(t, true)

	truck, _ := repo.CreateTruck(context.Background(), domain.Truck{
		LicensePlate: "HLX-001",
		CapacityKg:   decimal.NewFromInt(12000),
	})

	taxonomy, err := svc.CreateTaxonomy(context.Background(), domain.ProductTaxonomy{
		RawDescription: "cemento gris 50kg",
		StandardDesc:   "Portland cement 42.5 50kg bag",
		Category:       domain.CategoryCement,
		UnitSymbol:     "BAG",
		WeightFactor:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	_, err = svc.VerifyTaxonomy(context.Background(), taxonomy.ID, 1)
	require.NoError(t, err)

	delivery, err := svc.RecordDelivery(context.Background(), domain.Delivery{
		ClientName:     "Constructora del Este",
		Address:        "Av. Principal 1",
		TruckID:        truck.ID,
		RawDescription: "cemento gris 50kg",
		Quantity:       decimal.NewFromInt(100),
	}, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, delivery.IsWeightCalculated)
	assert.True(t, delivery.TotalWeightKg.Equal(decimal.NewFromInt(5000)), "100 bags x 50 kg")
	require.NotNil(t, delivery.TaxonomyID)
	assert.Equal(t, taxonomy.ID, *delivery.TaxonomyID)
}

func TestLogisticsService_RecordDelivery_UnverifiedTaxonomyNeedsWeight(t *testing.T) {
	svc, repo, _, _ := newLogisticsFixture(t, true)

	truck, _ := repo.CreateTruck(context.Background(), domain.Truck{
		LicensePlate: "HLX-001",
		CapacityKg:   decimal.NewFromInt(12000),
	})

	_, err := svc.CreateTaxonomy(context.Background(), domain.ProductTaxonomy{
		RawDescription: "arena lavada",
		StandardDesc:   "Washed river sand",
		Category:       domain.CategoryAggregate,
		UnitSymbol:     "M3",
		WeightFactor:   decimal.NewFromInt(1600),
	})
	require.NoError(t, err)

	// Unverified factor is not trusted; caller must provide weight.
	_, err = svc.RecordDelivery(context.Background(), domain.Delivery{
		ClientName:     "Ferreteria Central",
		Address:        "Calle 2",
		TruckID:        truck.ID,
		RawDescription: "arena lavada",
		Quantity:       decimal.NewFromInt(3),
	}, decimal.Zero)
	assert.ErrorIs(t, err, service.ErrMissingWeight)

	delivery, err := svc.RecordDelivery(context.Background(), domain.Delivery{
		ClientName:     "Ferreteria Central",
		Address:        "Calle 2",
		TruckID:        truck.ID,
		RawDescription: "arena lavada",
		Quantity:       decimal.NewFromInt(3),
		TotalWeightKg:  decimal.NewFromInt(4800),
	}, decimal.Zero)
	require.NoError(t, err)
	assert.False(t, delivery.IsWeightCalculated)
	assert.NotNil(t, delivery.TaxonomyID)
}

func TestLogisticsService_RecordDelivery_RejectsOverload(t *testing.T) {
	svc, repo, _, _ := newLogisticsFixture(t, true)

	truck, _ := repo.CreateTruck(context.Background(), domain.Truck{
		LicensePlate: "HLX-003",
		CapacityKg:   decimal.NewFromInt(3500),
	})

	_, err := svc.RecordDelivery(context.Background(), domain.Delivery{
		ClientName:     "Constructora del Este",
		Address:        "Av. Principal 1",
		TruckID:        truck.ID,
		RawDescription: "no match",
		Quantity:       decimal.NewFromInt(1),
		TotalWeightKg:  decimal.NewFromInt(4000),
	}, decimal.Zero)
	assert.ErrorIs(t, err, service.ErrTruckOverloaded)
}

func TestLogisticsService_RecordDelivery_CreditCheck(t *testing.T) {
	svc, repo, _, finance := newLogisticsFixture(t, false)

	truck, _ := repo.CreateTruck(context.Background(), domain.Truck{
		LicensePlate: "HLX-001",
		CapacityKg:   decimal.NewFromInt(12000),
	})

	_, err := svc.RecordDelivery(context.Background(), domain.Delivery{
		ClientName:     "Constructora del Este",
		Address:        "Av. Principal 1",
		TruckID:        truck.ID,
		RawDescription: "no match",
		Quantity:       decimal.NewFromInt(1),
		TotalWeightKg:  decimal.NewFromInt(100),
	}, decimal.NewFromInt(2500))
	assert.ErrorIs(t, err, service.ErrCreditDeclined)

	require.Len(t, finance.calls, 1)
	assert.Equal(t, "Constructora del Este", finance.calls[0].ClientName)
	assert.True(t, finance.calls[0].Amount.Equal(decimal.NewFromInt(2500)))
}

func TestLogisticsService_RecordDelivery_StockCheck(t *testing.T) {
	svc, repo, inventory, _ := newLogisticsFixture(t, true)

	truck, _ := repo.CreateTruck(context.Background(), domain.Truck{
		LicensePlate: "HLX-001",
		CapacityKg:   decimal.NewFromInt(12000),
	})

	delivery, err := svc.RecordDelivery(context.Background(), domain.Delivery{
		ClientName:     "Constructora del Este",
		Address:        "Av. Principal 1",
		TruckID:        truck.ID,
		ItemSKU:        "CEM-42.5-BAG",
		RawDescription: "cemento gris 50kg",
		Quantity:       decimal.NewFromInt(20),
		TotalWeightKg:  decimal.NewFromInt(1000),
	}, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "CEM-42.5-BAG", delivery.ItemSKU)

	require.Len(t, inventory.calls, 1)
	require.Len(t, inventory.calls[0].Materials, 1)
	assert.Equal(t, "CEM-42.5-BAG", inventory.calls[0].Materials[0].SKU)
	assert.True(t, inventory.calls[0].Materials[0].Quantity.Equal(decimal.NewFromInt(20)))

	// Once available stock no longer covers the quantity the delivery is
	// rejected and nothing is persisted.
	inventory.sufficient = false
	_, err = svc.RecordDelivery(context.Background(), domain.Delivery{
		ClientName:     "Constructora del Este",
		Address:        "Av. Principal 1",
		TruckID:        truck.ID,
		ItemSKU:        "CEM-42.5-BAG",
		RawDescription: "cemento gris 50kg",
		Quantity:       decimal.NewFromInt(20),
		TotalWeightKg:  decimal.NewFromInt(1000),
	}, decimal.Zero)
	assert.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.Len(t, repo.deliveries, 1)
}

func TestLogisticsService_RecordDelivery_NoSKUSkipsStockCheck(t *testing.T) {
	svc, repo, inventory, _ := newLogisticsFixture(t, true)

	truck, _ := repo.CreateTruck(context.Background(), domain.Truck{
		LicensePlate: "HLX-001",
		CapacityKg:   decimal.NewFromInt(12000),
	})

	_, err := svc.RecordDelivery(context.Background(), domain.Delivery{
		ClientName:     "Ferreteria Central",
		Address:        "Calle 2",
		TruckID:        truck.ID,
		RawDescription: "material sin catalogar",
		Quantity:       decimal.NewFromInt(1),
		TotalWeightKg:  decimal.NewFromInt(500),
	}, decimal.Zero)
	require.NoError(t, err)
	assert.Empty(t, inventory.calls)
}

func TestLogisticsService_SuggestTruck(t *testing.T) {
	svc, repo, _, _ := newLogisticsFixture(t, true)

	repo.CreateTruck(context.Background(), domain.Truck{LicensePlate: "BIG", CapacityKg: decimal.NewFromInt(12000)})
	repo.CreateTruck(context.Background(), domain.Truck{LicensePlate: "MID", CapacityKg: decimal.NewFromInt(8000)})
	repo.CreateTruck(context.Background(), domain.Truck{LicensePlate: "SMALL", CapacityKg: decimal.NewFromInt(3500)})

	resp, err := svc.SuggestTruck(context.Background(), moduleapi.TruckSuggestionRequest{
		TotalWeightKg: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	// The smallest truck that can carry the load has the highest
	// utilization and wins; the 3500 kg truck is excluded outright.
	require.NotNil(t, resp.Suggested)
	assert.Equal(t, "MID", resp.Suggested.LicensePlate)
	assert.Len(t, resp.Candidates, 2)

	for _, c := range resp.Candidates {
		assert.True(t, c.Utilization.LessThanOrEqual(decimal.NewFromInt(1)), "never suggest an overloaded truck")
	}
}

func TestLogisticsService_SuggestTruck_NoCandidate(t *testing.T) {
	svc, repo, _, _ := newLogisticsFixture(t, true)

	repo.CreateTruck(context.Background(), domain.Truck{LicensePlate: "SMALL", CapacityKg: decimal.NewFromInt(3500)})

	_, err := svc.SuggestTruck(context.Background(), moduleapi.TruckSuggestionRequest{
		TotalWeightKg: decimal.NewFromInt(5000),
	})
	assert.ErrorIs(t, err, service.ErrNoSuitableTruck)
}
