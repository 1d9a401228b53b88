package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository/dao"
)

var (
	ErrSupplierNotFound   = dao.ErrSupplierNotFound
	ErrSupplierNameExists = dao.ErrSupplierNameExists
	ErrSupplierInUse      = dao.ErrSupplierInUse

	ErrTaxConfigNotFound   = dao.ErrTaxConfigNotFound
	ErrTaxConfigCodeExists = dao.ErrTaxConfigCodeExists

	ErrItemSupplierExists   = dao.ErrItemSupplierExists
	ErrItemSupplierNotFound = dao.ErrItemSupplierNotFound

	ErrOrderNotFound     = dao.ErrOrderNotFound
	ErrOrderLineNotFound = dao.ErrOrderLineNotFound
	ErrOverReceipt       = dao.ErrOverReceipt
)

type PurchasingDAO interface {
	InsertSupplier(ctx context.Context, supplier dao.Supplier) (dao.Supplier, error)
	FindSupplierByID(ctx context.Context, id uint) (dao.Supplier, error)
	FindAllSuppliers(ctx context.Context) ([]dao.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier dao.Supplier) (dao.Supplier, error)
	DeleteSupplier(ctx context.Context, id uint) error

	InsertTaxConfig(ctx context.Context, conf dao.TaxConfiguration) (dao.TaxConfiguration, error)
	FindTaxConfigByID(ctx context.Context, id uint) (dao.TaxConfiguration, error)
	FindAllTaxConfigs(ctx context.Context) ([]dao.TaxConfiguration, error)

	InsertItemSupplier(ctx context.Context, link dao.ItemSupplier) (dao.ItemSupplier, error)
	DeleteItemSupplier(ctx context.Context, itemID, supplierID uint) error
	FindItemSuppliersByItemID(ctx context.Context, itemID uint) ([]dao.ItemSupplier, error)

	InsertOrder(ctx context.Context, order dao.PurchaseOrder) (dao.PurchaseOrder, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (dao.PurchaseOrder, error)
	FindOrdersBySupplierID(ctx context.Context, supplierID uint) ([]dao.PurchaseOrder, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
	ReceiveOrderLine(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) (dao.PurchaseOrderLine, error)
	RollbackOrderLineReceipt(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) error
}

type PurchasingRepository struct {
	dao PurchasingDAO
}

func NewPurchasingRepository(dao PurchasingDAO) *PurchasingRepository {
	return &PurchasingRepository{
		dao: dao,
	}
}

// ── Suppliers ─────────────────────────────────────────────────────────────

func (r *PurchasingRepository) CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	created, err := r.dao.InsertSupplier(ctx, dao.Supplier{
		Name:     supplier.Name,
		TaxID:    supplier.TaxID,
		Email:    supplier.Email,
		Phone:    supplier.Phone,
		IsActive: true,
	})
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("r.dao.InsertSupplier -> %w", err)
	}
	return r.supplierDaoToDomain(created), nil
}

func (r *PurchasingRepository) FindSupplierByID(ctx context.Context, id uint) (domain.Supplier, error) {
	found, err := r.dao.FindSupplierByID(ctx, id)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("r.dao.FindSupplierByID -> %w", err)
	}
	return r.supplierDaoToDomain(found), nil
}

func (r *PurchasingRepository) FindAllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	found, err := r.dao.FindAllSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllSuppliers -> %w", err)
	}

	suppliers := make([]domain.Supplier, len(found))
	for i, s := range found {
		suppliers[i] = r.supplierDaoToDomain(s)
	}
	return suppliers, nil
}

func (r *PurchasingRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	updated, err := r.dao.UpdateSupplier(ctx, dao.Supplier{
		ID:       supplier.ID,
		Name:     supplier.Name,
		TaxID:    supplier.TaxID,
		Email:    supplier.Email,
		Phone:    supplier.Phone,
		IsActive: supplier.IsActive,
	})
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("r.dao.UpdateSupplier -> %w", err)
	}
	return r.supplierDaoToDomain(updated), nil
}

func (r *PurchasingRepository) DeleteSupplier(ctx context.Context, id uint) error {
	if err := r.dao.DeleteSupplier(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteSupplier -> %w", err)
	}
	return nil
}

// ── Tax configurations ────────────────────────────────────────────────────

func (r *PurchasingRepository) CreateTaxConfig(ctx context.Context, conf domain.TaxConfiguration) (domain.TaxConfiguration, error) {
	created, err := r.dao.InsertTaxConfig(ctx, dao.TaxConfiguration{
		Code:        conf.Code,
		Description: conf.Description,
		Rate:        conf.Rate,
		IsActive:    true,
	})
	if err != nil {
		return domain.TaxConfiguration{}, fmt.Errorf("r.dao.InsertTaxConfig -> %w", err)
	}
	return r.taxConfigDaoToDomain(created), nil
}

func (r *PurchasingRepository) FindTaxConfigByID(ctx context.Context, id uint) (domain.TaxConfiguration, error) {
	found, err := r.dao.FindTaxConfigByID(ctx, id)
	if err != nil {
		return domain.TaxConfiguration{}, fmt.Errorf("r.dao.FindTaxConfigByID -> %w", err)
	}
	return r.taxConfigDaoToDomain(found), nil
}

func (r *PurchasingRepository) FindAllTaxConfigs(ctx context.Context) ([]domain.TaxConfiguration, error) {
	found, err := r.dao.FindAllTaxConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllTaxConfigs -> %w", err)
	}

	confs := make([]domain.TaxConfiguration, len(found))
	for i, c := range found {
		confs[i] = r.taxConfigDaoToDomain(c)
	}
	return confs, nil
}

// ── Item supplier links ───────────────────────────────────────────────────

func (r *PurchasingRepository) LinkItemSupplier(ctx context.Context, link domain.ItemSupplier) (domain.ItemSupplier, error) {
	created, err := r.dao.InsertItemSupplier(ctx, dao.ItemSupplier{
		ItemID:           link.ItemID,
		SupplierID:       link.SupplierID,
		SupplierItemCode: link.SupplierItemCode,
		LeadTimeDays:     link.LeadTimeDays,
		LastPrice:        link.LastPrice,
	})
	if err != nil {
		return domain.ItemSupplier{}, fmt.Errorf("r.dao.InsertItemSupplier -> %w", err)
	}
	return r.itemSupplierDaoToDomain(created), nil
}

func (r *PurchasingRepository) UnlinkItemSupplier(ctx context.Context, itemID, supplierID uint) error {
	if err := r.dao.DeleteItemSupplier(ctx, itemID, supplierID); err != nil {
		return fmt.Errorf("r.dao.DeleteItemSupplier -> %w", err)
	}
	return nil
}

func (r *PurchasingRepository) FindItemSuppliersByItemID(ctx context.Context, itemID uint) ([]domain.ItemSupplier, error) {
	found, err := r.dao.FindItemSuppliersByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindItemSuppliersByItemID -> %w", err)
	}

	links := make([]domain.ItemSupplier, len(found))
	for i, l := range found {
		links[i] = r.itemSupplierDaoToDomain(l)
	}
	return links, nil
}

// ── Purchase orders ───────────────────────────────────────────────────────

func (r *PurchasingRepository) CreateOrder(ctx context.Context, order domain.PurchaseOrder) (domain.PurchaseOrder, error) {
	daoOrder := dao.PurchaseOrder{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Status:     string(order.Status),
		Currency:   order.Currency,
		Total:      order.Total,
		OrderedAt:  order.OrderedAt,
		ExpectedAt: order.ExpectedAt,
	}
	for _, line := range order.Lines {
		daoOrder.Lines = append(daoOrder.Lines, dao.PurchaseOrderLine{
			ID:          line.ID,
			OrderID:     order.ID,
			ItemID:      line.ItemID,
			QtyOrdered:  line.QtyOrdered,
			QtyReceived: line.QtyReceived,
			UnitPrice:   line.UnitPrice,
			TaxConfigID: line.TaxConfigID,
		})
	}

	created, err := r.dao.InsertOrder(ctx, daoOrder)
	if err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("r.dao.InsertOrder -> %w", err)
	}
	return r.orderDaoToDomain(created), nil
}

func (r *PurchasingRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (domain.PurchaseOrder, error) {
	found, err := r.dao.FindOrderByID(ctx, id)
	if err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("r.dao.FindOrderByID -> %w", err)
	}
	return r.orderDaoToDomain(found), nil
}

func (r *PurchasingRepository) FindOrdersBySupplierID(ctx context.Context, supplierID uint) ([]domain.PurchaseOrder, error) {
	found, err := r.dao.FindOrdersBySupplierID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOrdersBySupplierID -> %w", err)
	}

	orders := make([]domain.PurchaseOrder, len(found))
	for i, o := range found {
		orders[i] = r.orderDaoToDomain(o)
	}
	return orders, nil
}

func (r *PurchasingRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.PurchaseOrderStatus) error {
	if err := r.dao.UpdateOrderStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateOrderStatus -> %w", err)
	}
	return nil
}

func (r *PurchasingRepository) ReceiveOrderLine(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) (domain.PurchaseOrderLine, error) {
	line, err := r.dao.ReceiveOrderLine(ctx, lineID, qty)
	if err != nil {
		return domain.PurchaseOrderLine{}, fmt.Errorf("r.dao.ReceiveOrderLine -> %w", err)
	}
	return r.orderLineDaoToDomain(line), nil
}

func (r *PurchasingRepository) RollbackOrderLineReceipt(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) error {
	if err := r.dao.RollbackOrderLineReceipt(ctx, lineID, qty); err != nil {
		return fmt.Errorf("r.dao.RollbackOrderLineReceipt -> %w", err)
	}
	return nil
}

// ── Mapping ───────────────────────────────────────────────────────────────

func (r *PurchasingRepository) supplierDaoToDomain(s dao.Supplier) domain.Supplier {
	return domain.Supplier{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Email:     s.Email,
		Phone:     s.Phone,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *PurchasingRepository) taxConfigDaoToDomain(c dao.TaxConfiguration) domain.TaxConfiguration {
	return domain.TaxConfiguration{
		ID:          c.ID,
		Code:        c.Code,
		Description: c.Description,
		Rate:        c.Rate,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *PurchasingRepository) itemSupplierDaoToDomain(l dao.ItemSupplier) domain.ItemSupplier {
	return domain.ItemSupplier{
		ItemID:           l.ItemID,
		SupplierID:       l.SupplierID,
		SupplierItemCode: l.SupplierItemCode,
		LeadTimeDays:     l.LeadTimeDays,
		LastPrice:        l.LastPrice,
	}
}

func (r *PurchasingRepository) orderDaoToDomain(o dao.PurchaseOrder) domain.PurchaseOrder {
	order := domain.PurchaseOrder{
		ID:         o.ID,
		SupplierID: o.SupplierID,
		Status:     domain.PurchaseOrderStatus(o.Status),
		Currency:   o.Currency,
		Total:      o.Total,
		OrderedAt:  o.OrderedAt,
		ExpectedAt: o.ExpectedAt,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, line := range o.Lines {
		order.Lines = append(order.Lines, r.orderLineDaoToDomain(line))
	}
	return order
}

func (r *PurchasingRepository) orderLineDaoToDomain(l dao.PurchaseOrderLine) domain.PurchaseOrderLine {
	return domain.PurchaseOrderLine{
		ID:          l.ID,
		OrderID:     l.OrderID,
		ItemID:      l.ItemID,
		QtyOrdered:  l.QtyOrdered,
		QtyReceived: l.QtyReceived,
		UnitPrice:   l.UnitPrice,
		TaxConfigID: l.TaxConfigID,
	}
}
