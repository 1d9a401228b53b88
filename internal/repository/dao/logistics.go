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
	ErrTruckNotFound    = errors.New("truck not found")
	ErrTruckPlateExists = errors.New("truck license plate already exists")

	ErrTaxonomyNotFound = errors.New("product taxonomy not found")

	ErrDeliveryNotFound = errors.New("delivery not found")
)

type Truck struct {
	ID           uint   `gorm:"primaryKey"`
	LicensePlate string `gorm:"unique;not null"`
	Type         string
	CapacityKg   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	IsActive     bool            `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ProductTaxonomy struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RawDescription string    `gorm:"not null;index"`
	StandardDesc   string
	Category       string          `gorm:"not null"` // "AGGREGATE", "CEMENT", "STEEL", "REBAR", or "OTHER"
	UnitSymbol     string          `gorm:"not null"`
	WeightFactor   decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	IsVerified     bool            `gorm:"default:false"`
	VerifiedBy     *uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Delivery struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientName         string    `gorm:"not null;index"`
	Address            string    `gorm:"not null"`
	Latitude           float64
	Longitude          float64
	TruckID            uint  `gorm:"not null;index"`
	Truck              Truck `gorm:"foreignKey:TruckID;constraint:OnDelete:RESTRICT"`
	TaxonomyID         *uuid.UUID `gorm:"type:uuid"`
	ItemSKU            string     `gorm:"index"`
	RawDescription     string     `gorm:"not null"`
	Quantity           decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	RawUnit            string
	TotalWeightKg      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	IsWeightCalculated bool            `gorm:"default:false"`
	ServiceTimeMinutes decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	ExpertNotes        string
	DeliveryDate       time.Time `gorm:"not null;index"`
	IngestionBatchID   string    `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type LogisticsDAO struct {
	db *gorm.DB
}

func NewLogisticsDAO(db *gorm.DB) *LogisticsDAO {
	return &LogisticsDAO{
		db: db,
	}
}

// ── Trucks ────────────────────────────────────────────────────────────────

func (d *LogisticsDAO) InsertTruck(ctx context.Context, truck Truck) (Truck, error) {
	result := d.db.WithContext(ctx).Create(&truck)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `"uni_trucks_license_plate"`) {
			return Truck{}, ErrTruckPlateExists
		}
		return Truck{}, result.Error
	}
	return truck, nil
}

func (d *LogisticsDAO) FindTruckByID(ctx context.Context, id uint) (Truck, error) {
	var truck Truck
	result := d.db.WithContext(ctx).First(&truck, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Truck{}, ErrTruckNotFound
		}
		return Truck{}, result.Error
	}
	return truck, nil
}

func (d *LogisticsDAO) FindActiveTrucks(ctx context.Context) ([]Truck, error) {
	var trucks []Truck
	result := d.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&trucks)
	if result.Error != nil {
		return nil, result.Error
	}
	return trucks, nil
}

// ── Product taxonomies ────────────────────────────────────────────────────

func (d *LogisticsDAO) InsertTaxonomy(ctx context.Context, taxonomy ProductTaxonomy) (ProductTaxonomy, error) {
	result := d.db.WithContext(ctx).Create(&taxonomy)
	if result.Error != nil {
		return ProductTaxonomy{}, result.Error
	}
	return taxonomy, nil
}

func (d *LogisticsDAO) FindTaxonomyByID(ctx context.Context, id uuid.UUID) (ProductTaxonomy, error) {
	var taxonomy ProductTaxonomy
	result := d.db.WithContext(ctx).First(&taxonomy, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProductTaxonomy{}, ErrTaxonomyNotFound
		}
		return ProductTaxonomy{}, result.Error
	}
	return taxonomy, nil
}

// FindTaxonomyByDescription matches on the raw description, preferring
// verified entries.
func (d *LogisticsDAO) FindTaxonomyByDescription(ctx context.Context, rawDescription string) (ProductTaxonomy, error) {
	var taxonomy ProductTaxonomy
	result := d.db.WithContext(ctx).
		Where("raw_description = ?", rawDescription).
		Order("is_verified DESC, created_at").
		First(&taxonomy)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProductTaxonomy{}, ErrTaxonomyNotFound
		}
		return ProductTaxonomy{}, result.Error
	}
	return taxonomy, nil
}

func (d *LogisticsDAO) FindAllTaxonomies(ctx context.Context) ([]ProductTaxonomy, error) {
	var taxonomies []ProductTaxonomy
	result := d.db.WithContext(ctx).Order("created_at").Find(&taxonomies)
	if result.Error != nil {
		return nil, result.Error
	}
	return taxonomies, nil
}

// VerifyTaxonomy flips the verified flag and records the verifying user.
func (d *LogisticsDAO) VerifyTaxonomy(ctx context.Context, id uuid.UUID, verifiedBy uint) (ProductTaxonomy, error) {
	result := d.db.WithContext(ctx).Model(&ProductTaxonomy{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_verified": true,
			"verified_by": verifiedBy,
		})
	if result.Error != nil {
		return ProductTaxonomy{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ProductTaxonomy{}, ErrTaxonomyNotFound
	}
	return d.FindTaxonomyByID(ctx, id)
}

// ── Deliveries ────────────────────────────────────────────────────────────

func (d *LogisticsDAO) InsertDelivery(ctx context.Context, delivery Delivery) (Delivery, error) {
	result := d.db.WithContext(ctx).Create(&delivery)
	if result.Error != nil {
		return Delivery{}, result.Error
	}
	return delivery, nil
}

func (d *LogisticsDAO) FindDeliveryByID(ctx context.Context, id uuid.UUID) (Delivery, error) {
	var delivery Delivery
	result := d.db.WithContext(ctx).First(&delivery, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Delivery{}, ErrDeliveryNotFound
		}
		return Delivery{}, result.Error
	}
	return delivery, nil
}

func (d *LogisticsDAO) FindDeliveries(ctx context.Context, clientName string, limit, offset int) ([]Delivery, error) {
	query := d.db.WithContext(ctx).Order("delivery_date DESC")
	if clientName != "" {
		query = query.Where("client_name = ?", clientName)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var deliveries []Delivery
	result := query.Find(&deliveries)
	if result.Error != nil {
		return nil, result.Error
	}
	return deliveries, nil
}
