package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/moduleapi"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository"
)

var (
	ErrTruckNotFound    = repository.ErrTruckNotFound
	ErrTruckPlateExists = repository.ErrTruckPlateExists
	ErrTaxonomyNotFound = repository.ErrTaxonomyNotFound
	ErrDeliveryNotFound = repository.ErrDeliveryNotFound

	ErrTruckOverloaded  = errors.New("delivery weight exceeds truck capacity")
	ErrNoSuitableTruck  = errors.New("no active truck can carry the requested weight")
	ErrCreditDeclined   = errors.New("customer credit check declined")
	ErrInvalidCategory  = errors.New("unknown product category")
	ErrMissingWeight    = errors.New("total weight is required when no verified taxonomy matches")
)

var productCategories = map[domain.ProductCategory]struct{}{
	domain.CategoryAggregate: {},
	domain.CategoryCement:    {},
	domain.CategorySteel:     {},
	domain.CategoryRebar:     {},
	domain.CategoryOther:     {},
}

type LogisticsRepository interface {
	CreateTruck(ctx context.Context, truck domain.Truck) (domain.Truck, error)
	FindTruckByID(ctx context.Context, id uint) (domain.Truck, error)
	FindActiveTrucks(ctx context.Context) ([]domain.Truck, error)

	CreateTaxonomy(ctx context.Context, taxonomy domain.ProductTaxonomy) (domain.ProductTaxonomy, error)
	FindTaxonomyByID(ctx context.Context, id uuid.UUID) (domain.ProductTaxonomy, error)
	FindTaxonomyByDescription(ctx context.Context, rawDescription string) (domain.ProductTaxonomy, error)
	FindAllTaxonomies(ctx context.Context) ([]domain.ProductTaxonomy, error)
	VerifyTaxonomy(ctx context.Context, id uuid.UUID, verifiedBy uint) (domain.ProductTaxonomy, error)

	CreateDelivery(ctx context.Context, delivery domain.Delivery) (domain.Delivery, error)
	FindDeliveryByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error)
	FindDeliveries(ctx context.Context, clientName string, limit, offset int) ([]domain.Delivery, error)
}

type LogisticsService struct {
	repo      LogisticsRepository
	inventory moduleapi.InventoryAPI
	finance   moduleapi.FinanceAPI
}

func NewLogisticsService(repo LogisticsRepository, inventory moduleapi.InventoryAPI, finance moduleapi.FinanceAPI) *LogisticsService {
	return &LogisticsService{
		repo:      repo,
		inventory: inventory,
		finance:   finance,
	}
}

// ── Trucks ────────────────────────────────────────────────────────────────

func (s *LogisticsService) CreateTruck(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	if !truck.CapacityKg.IsPositive() {
		return domain.Truck{}, ErrInvalidQuantity
	}

	created, err := s.repo.CreateTruck(ctx, truck)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("s.repo.CreateTruck -> %w", err)
	}
	return created, nil
}

func (s *LogisticsService) GetTruck(ctx context.Context, id uint) (domain.Truck, error) {
	truck, err := s.repo.FindTruckByID(ctx, id)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("s.repo.FindTruckByID -> %w", err)
	}
	return truck, nil
}

func (s *LogisticsService) ListActiveTrucks(ctx context.Context) ([]domain.Truck, error) {
	trucks, err := s.repo.FindActiveTrucks(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveTrucks -> %w", err)
	}
	return trucks, nil
}

// ── Product taxonomies ────────────────────────────────────────────────────

func (s *LogisticsService) CreateTaxonomy(ctx context.Context, taxonomy domain.ProductTaxonomy) (domain.ProductTaxonomy, error) {
	if _, ok := productCategories[taxonomy.Category]; !ok {
		return domain.ProductTaxonomy{}, ErrInvalidCategory
	}
	if taxonomy.WeightFactor.IsNegative() {
		return domain.ProductTaxonomy{}, ErrInvalidQuantity
	}

	taxonomy.ID = uuid.New()
	created, err := s.repo.CreateTaxonomy(ctx, taxonomy)
	if err != nil {
		return domain.ProductTaxonomy{}, fmt.Errorf("s.repo.CreateTaxonomy -> %w", err)
	}
	return created, nil
}

func (s *LogisticsService) ListTaxonomies(ctx context.Context) ([]domain.ProductTaxonomy, error) {
	taxonomies, err := s.repo.FindAllTaxonomies(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllTaxonomies -> %w", err)
	}
	return taxonomies, nil
}

// VerifyTaxonomy marks a taxonomy entry as expert-confirmed. Verified
// entries drive automatic weight calculation for incoming deliveries.
func (s *LogisticsService) VerifyTaxonomy(ctx context.Context, id uuid.UUID, verifiedBy uint) (domain.ProductTaxonomy, error) {
	verified, err := s.repo.VerifyTaxonomy(ctx, id, verifiedBy)
	if err != nil {
		return domain.ProductTaxonomy{}, fmt.Errorf("s.repo.VerifyTaxonomy -> %w", err)
	}
	return verified, nil
}

// ── Deliveries ────────────────────────────────────────────────────────────

// RecordDelivery ingests a delivery record. When a verified taxonomy
// matches the raw product description the total weight is derived as
// quantity times the taxonomy weight factor; otherwise the caller-supplied
// weight is used as-is. When the delivery names an inventory item, its
// available stock must cover the quantity. The assigned truck must be able
// to carry the load and the client must pass a credit check for the
// delivered value.
func (s *LogisticsService) RecordDelivery(ctx context.Context, delivery domain.Delivery, orderValue decimal.Decimal) (domain.Delivery, error) {
	if !delivery.Quantity.IsPositive() {
		return domain.Delivery{}, ErrInvalidQuantity
	}

	truck, err := s.repo.FindTruckByID(ctx, delivery.TruckID)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("s.repo.FindTruckByID -> %w", err)
	}

	taxonomy, err := s.repo.FindTaxonomyByDescription(ctx, delivery.RawDescription)
	switch {
	case err == nil && taxonomy.IsVerified:
		delivery.TaxonomyID = &taxonomy.ID
		delivery.TotalWeightKg = delivery.Quantity.Mul(taxonomy.WeightFactor)
		delivery.IsWeightCalculated = true
	case err == nil:
		// Unverified match: keep the link for later expert review but do
		// not trust its weight factor.
		delivery.TaxonomyID = &taxonomy.ID
		delivery.IsWeightCalculated = false
	case errors.Is(err, repository.ErrTaxonomyNotFound):
		delivery.IsWeightCalculated = false
	default:
		return domain.Delivery{}, fmt.Errorf("s.repo.FindTaxonomyByDescription -> %w", err)
	}

	if !delivery.IsWeightCalculated && !delivery.TotalWeightKg.IsPositive() {
		return domain.Delivery{}, ErrMissingWeight
	}

	if delivery.TotalWeightKg.GreaterThan(truck.CapacityKg) {
		return domain.Delivery{}, ErrTruckOverloaded
	}

	if delivery.ItemSKU != "" {
		avail, err := s.inventory.CheckStockAvailability(ctx, moduleapi.StockAvailabilityRequest{
			Materials: []moduleapi.MaterialLine{{SKU: delivery.ItemSKU, Quantity: delivery.Quantity}},
		})
		if err != nil {
			return domain.Delivery{}, fmt.Errorf("s.inventory.CheckStockAvailability -> %w", err)
		}
		if !avail.Sufficient {
			return domain.Delivery{}, ErrInsufficientStock
		}
	}

	if orderValue.IsPositive() {
		check, err := s.finance.CheckCredit(ctx, moduleapi.CreditCheckRequest{
			ClientName: delivery.ClientName,
			Amount:     orderValue,
		})
		if err != nil {
			return domain.Delivery{}, fmt.Errorf("s.finance.CheckCredit -> %w", err)
		}
		if !check.Approved {
			return domain.Delivery{}, ErrCreditDeclined
		}
	}

	delivery.ID = uuid.New()
	if delivery.DeliveryDate.IsZero() {
		delivery.DeliveryDate = time.Now()
	}

	created, err := s.repo.CreateDelivery(ctx, delivery)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("s.repo.CreateDelivery -> %w", err)
	}
	return created, nil
}

func (s *LogisticsService) GetDelivery(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
	delivery, err := s.repo.FindDeliveryByID(ctx, id)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("s.repo.FindDeliveryByID -> %w", err)
	}
	return delivery, nil
}

func (s *LogisticsService) ListDeliveries(ctx context.Context, clientName string, limit, offset int) ([]domain.Delivery, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	deliveries, err := s.repo.FindDeliveries(ctx, clientName, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindDeliveries -> %w", err)
	}
	return deliveries, nil
}

// ── Truck suggestion ──────────────────────────────────────────────────────

var (
	scoreMax        = decimal.NewFromInt(100)
	utilizationFull = decimal.NewFromInt(1)
)

// SuggestTruck scores every active truck that can carry the load. The
// score rewards high capacity utilization so the smallest sufficient
// truck wins; overloaded trucks are excluded outright.
func (s *LogisticsService) SuggestTruck(ctx context.Context, req moduleapi.TruckSuggestionRequest) (moduleapi.TruckSuggestionResponse, error) {
	if !req.TotalWeightKg.IsPositive() {
		return moduleapi.TruckSuggestionResponse{}, ErrInvalidQuantity
	}

	trucks, err := s.repo.FindActiveTrucks(ctx)
	if err != nil {
		return moduleapi.TruckSuggestionResponse{}, fmt.Errorf("s.repo.FindActiveTrucks -> %w", err)
	}

	var candidates []moduleapi.TruckCandidate
	for _, t := range trucks {
		if req.TruckType != "" && t.Type != req.TruckType {
			continue
		}
		if t.CapacityKg.LessThan(req.TotalWeightKg) || !t.CapacityKg.IsPositive() {
			continue
		}

		utilization := req.TotalWeightKg.Div(t.CapacityKg)
		if utilization.GreaterThan(utilizationFull) {
			continue
		}

		candidates = append(candidates, moduleapi.TruckCandidate{
			TruckID:      t.ID,
			LicensePlate: t.LicensePlate,
			Score:        utilization.Mul(scoreMax).Round(2),
			Utilization:  utilization.Round(4),
		})
	}

	if len(candidates) == 0 {
		return moduleapi.TruckSuggestionResponse{}, ErrNoSuitableTruck
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score.GreaterThan(candidates[best].Score) {
			best = i
		}
	}

	return moduleapi.TruckSuggestionResponse{
		Suggested:  &candidates[best],
		Candidates: candidates,
	}, nil
}

var _ moduleapi.LogisticsAPI = (*LogisticsService)(nil)
