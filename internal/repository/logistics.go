package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository/dao"
)

var (
	ErrTruckNotFound    = dao.ErrTruckNotFound
	ErrTruckPlateExists = dao.ErrTruckPlateExists
	ErrTaxonomyNotFound = dao.ErrTaxonomyNotFound
	ErrDeliveryNotFound = dao.ErrDeliveryNotFound
)

type LogisticsDAO interface {
	InsertTruck(ctx context.Context, truck dao.Truck) (dao.Truck, error)
	FindTruckByID(ctx context.Context, id uint) (dao.Truck, error)
	FindActiveTrucks(ctx context.Context) ([]dao.Truck, error)

	InsertTaxonomy(ctx context.Context, taxonomy dao.ProductTaxonomy) (dao.ProductTaxonomy, error)
	FindTaxonomyByID(ctx context.Context, id uuid.UUID) (dao.ProductTaxonomy, error)
	FindTaxonomyByDescription(ctx context.Context, rawDescription string) (dao.ProductTaxonomy, error)
	FindAllTaxonomies(ctx context.Context) ([]dao.ProductTaxonomy, error)
	VerifyTaxonomy(ctx context.Context, id uuid.UUID, verifiedBy uint) (dao.ProductTaxonomy, error)

	InsertDelivery(ctx context.Context, delivery dao.Delivery) (dao.Delivery, error)
	FindDeliveryByID(ctx context.Context, id uuid.UUID) (dao.Delivery, error)
	FindDeliveries(ctx context.Context, clientName string, limit, offset int) ([]dao.Delivery, error)
}

type LogisticsRepository struct {
	dao LogisticsDAO
}

func NewLogisticsRepository(dao LogisticsDAO) *LogisticsRepository {
	return &LogisticsRepository{
		dao: dao,
	}
}

// ── Trucks ────────────────────────────────────────────────────────────────

func (r *LogisticsRepository) CreateTruck(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	created, err := r.dao.InsertTruck(ctx, dao.Truck{
		LicensePlate: truck.LicensePlate,
		Type:         truck.Type,
		CapacityKg:   truck.CapacityKg,
		IsActive:     true,
	})
	if err != nil {
		return domain.Truck{}, fmt.Errorf("r.dao.InsertTruck -> %w", err)
	}
	return r.truckDaoToDomain(created), nil
}

func (r *LogisticsRepository) FindTruckByID(ctx context.Context, id uint) (domain.Truck, error) {
	found, err := r.dao.FindTruckByID(ctx, id)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("r.dao.FindTruckByID -> %w", err)
	}
	return r.truckDaoToDomain(found), nil
}

func (r *LogisticsRepository) FindActiveTrucks(ctx context.Context) ([]domain.Truck, error) {
	found, err := r.dao.FindActiveTrucks(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveTrucks -> %w", err)
	}

	trucks := make([]domain.Truck, len(found))
	for i, t := range found {
		trucks[i] = r.truckDaoToDomain(t)
	}
	return trucks, nil
}

// ── Product taxonomies ────────────────────────────────────────────────────

func (r *LogisticsRepository) CreateTaxonomy(ctx context.Context, taxonomy domain.ProductTaxonomy) (domain.ProductTaxonomy, error) {
	created, err := r.dao.InsertTaxonomy(ctx, dao.ProductTaxonomy{
		ID:             taxonomy.ID,
		RawDescription: taxonomy.RawDescription,
		StandardDesc:   taxonomy.StandardDesc,
		Category:       string(taxonomy.Category),
		UnitSymbol:     taxonomy.UnitSymbol,
		WeightFactor:   taxonomy.WeightFactor,
	})
	if err != nil {
		return domain.ProductTaxonomy{}, fmt.Errorf("r.dao.InsertTaxonomy -> %w", err)
	}
	return r.taxonomyDaoToDomain(created), nil
}

func (r *LogisticsRepository) FindTaxonomyByID(ctx context.Context, id uuid.UUID) (domain.ProductTaxonomy, error) {
	found, err := r.dao.FindTaxonomyByID(ctx, id)
	if err != nil {
		return domain.ProductTaxonomy{}, fmt.Errorf("r.dao.FindTaxonomyByID -> %w", err)
	}
	return r.taxonomyDaoToDomain(found), nil
}

func (r *LogisticsRepository) FindTaxonomyByDescription(ctx context.Context, rawDescription string) (domain.ProductTaxonomy, error) {
	found, err := r.dao.FindTaxonomyByDescription(ctx, rawDescription)
	if err != nil {
		return domain.ProductTaxonomy{}, fmt.Errorf("r.dao.FindTaxonomyByDescription -> %w", err)
	}
	return r.taxonomyDaoToDomain(found), nil
}

func (r *LogisticsRepository) FindAllTaxonomies(ctx context.Context) ([]domain.ProductTaxonomy, error) {
	found, err := r.dao.FindAllTaxonomies(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllTaxonomies -> %w", err)
	}

	taxonomies := make([]domain.ProductTaxonomy, len(found))
	for i, t := range found {
		taxonomies[i] = r.taxonomyDaoToDomain(t)
	}
	return taxonomies, nil
}

func (r *LogisticsRepository) VerifyTaxonomy(ctx context.Context, id uuid.UUID, verifiedBy uint) (domain.ProductTaxonomy, error) {
	verified, err := r.dao.VerifyTaxonomy(ctx, id, verifiedBy)
	if err != nil {
		return domain.ProductTaxonomy{}, fmt.Errorf("r.dao.VerifyTaxonomy -> %w", err)
	}
	return r.taxonomyDaoToDomain(verified), nil
}

// ── Deliveries ────────────────────────────────────────────────────────────

func (r *LogisticsRepository) CreateDelivery(ctx context.Context, delivery domain.Delivery) (domain.Delivery, error) {
	created, err := r.dao.InsertDelivery(ctx, r.deliveryDomainToDao(delivery))
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("r.dao.InsertDelivery -> %w", err)
	}
	return r.deliveryDaoToDomain(created), nil
}

func (r *LogisticsRepository) FindDeliveryByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
	found, err := r.dao.FindDeliveryByID(ctx, id)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("r.dao.FindDeliveryByID -> %w", err)
	}
	return r.deliveryDaoToDomain(found), nil
}

func (r *LogisticsRepository) FindDeliveries(ctx context.Context, clientName string, limit, offset int) ([]domain.Delivery, error) {
	found, err := r.dao.FindDeliveries(ctx, clientName, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDeliveries -> %w", err)
	}

	deliveries := make([]domain.Delivery, len(found))
	for i, d := range found {
		deliveries[i] = r.deliveryDaoToDomain(d)
	}
	return deliveries, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────

func (r *LogisticsRepository) truckDaoToDomain(t dao.Truck) domain.Truck {
	return domain.Truck{
		ID:           t.ID,
		LicensePlate: t.LicensePlate,
		Type:         t.Type,
		CapacityKg:   t.CapacityKg,
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (r *LogisticsRepository) taxonomyDaoToDomain(t dao.ProductTaxonomy) domain.ProductTaxonomy {
	return domain.ProductTaxonomy{
		ID:             t.ID,
		RawDescription: t.RawDescription,
		StandardDesc:   t.StandardDesc,
		Category:       domain.ProductCategory(t.Category),
		UnitSymbol:     t.UnitSymbol,
		WeightFactor:   t.WeightFactor,
		IsVerified:     t.IsVerified,
		VerifiedBy:     t.VerifiedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (r *LogisticsRepository) deliveryDomainToDao(d domain.Delivery) dao.Delivery {
	return dao.Delivery{
		ID:                 d.ID,
		ClientName:         d.ClientName,
		Address:            d.Address,
		Latitude:           d.Latitude,
		Longitude:          d.Longitude,
		TruckID:            d.TruckID,
		TaxonomyID:         d.TaxonomyID,
		ItemSKU:            d.ItemSKU,
		RawDescription:     d.RawDescription,
		Quantity:           d.Quantity,
		RawUnit:            d.RawUnit,
		TotalWeightKg:      d.TotalWeightKg,
		IsWeightCalculated: d.IsWeightCalculated,
		ServiceTimeMinutes: d.ServiceTimeMinutes,
		ExpertNotes:        d.ExpertNotes,
		DeliveryDate:       d.DeliveryDate,
		IngestionBatchID:   d.IngestionBatchID,
	}
}

func (r *LogisticsRepository) deliveryDaoToDomain(d dao.Delivery) domain.Delivery {
	return domain.Delivery{
		ID:                 d.ID,
		ClientName:         d.ClientName,
		Address:            d.Address,
		Latitude:           d.Latitude,
		Longitude:          d.Longitude,
		TruckID:            d.TruckID,
		TaxonomyID:         d.TaxonomyID,
		ItemSKU:            d.ItemSKU,
		RawDescription:     d.RawDescription,
		Quantity:           d.Quantity,
		RawUnit:            d.RawUnit,
		TotalWeightKg:      d.TotalWeightKg,
		IsWeightCalculated: d.IsWeightCalculated,
		ServiceTimeMinutes: d.ServiceTimeMinutes,
		ExpertNotes:        d.ExpertNotes,
		DeliveryDate:       d.DeliveryDate,
		IngestionBatchID:   d.IngestionBatchID,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
