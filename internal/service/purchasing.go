package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository"
)

var (
	ErrSupplierNotFound   = repository.ErrSupplierNotFound
	ErrSupplierNameExists = repository.ErrSupplierNameExists
	ErrSupplierInUse      = repository.ErrSupplierInUse

	ErrTaxConfigNotFound   = repository.ErrTaxConfigNotFound
	ErrTaxConfigCodeExists = repository.ErrTaxConfigCodeExists

	ErrItemSupplierExists   = repository.ErrItemSupplierExists
	ErrItemSupplierNotFound = repository.ErrItemSupplierNotFound

	ErrOrderNotFound      = repository.ErrOrderNotFound
	ErrOrderLineNotFound  = repository.ErrOrderLineNotFound
	ErrOverReceipt        = repository.ErrOverReceipt
	ErrOrderNotReceivable = errors.New("purchase order is not in a receivable status")
	ErrOrderHasNoLines    = errors.New("purchase order must have at least one line")
	ErrOrderNotDraft      = errors.New("purchase order is not in draft status")
)

type PurchasingRepository interface {
	CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	FindSupplierByID(ctx context.Context, id uint) (domain.Supplier, error)
	FindAllSuppliers(ctx context.Context) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id uint) error

	CreateTaxConfig(ctx context.Context, conf domain.TaxConfiguration) (domain.TaxConfiguration, error)
	FindTaxConfigByID(ctx context.Context, id uint) (domain.TaxConfiguration, error)
	FindAllTaxConfigs(ctx context.Context) ([]domain.TaxConfiguration, error)

	LinkItemSupplier(ctx context.Context, link domain.ItemSupplier) (domain.ItemSupplier, error)
	UnlinkItemSupplier(ctx context.Context, itemID, supplierID uint) error
	FindItemSuppliersByItemID(ctx context.Context, itemID uint) ([]domain.ItemSupplier, error)

	CreateOrder(ctx context.Context, order domain.PurchaseOrder) (domain.PurchaseOrder, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (domain.PurchaseOrder, error)
	FindOrdersBySupplierID(ctx context.Context, supplierID uint) ([]domain.PurchaseOrder, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.PurchaseOrderStatus) error
	ReceiveOrderLine(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) (domain.PurchaseOrderLine, error)
	RollbackOrderLineReceipt(ctx context.Context, lineID uuid.UUID, qty decimal.Decimal) error
}

// PurchasingItemLookup is the slice of the inventory module purchasing
// needs: item resolution for order lines and goods receipts into staging.
type PurchasingItemLookup interface {
	GetItem(ctx context.Context, id uint) (domain.Item, error)
	ReceiveStock(ctx context.Context, itemID uint, qty decimal.Decimal, toStaging bool, reference string) (domain.Item, error)
}

type PurchasingService struct {
	repo      PurchasingRepository
	inventory PurchasingItemLookup
}

func NewPurchasingService(repo PurchasingRepository, inventory PurchasingItemLookup) *PurchasingService {
	return &PurchasingService{
		repo:      repo,
		inventory: inventory,
	}
}

// ── Suppliers ─────────────────────────────────────────────────────────────

func (s *PurchasingService) CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	created, err := s.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("s.repo.CreateSupplier -> %w", err)
	}
	return created, nil
}

func (s *PurchasingService) GetSupplier(ctx context.Context, id uint) (domain.Supplier, error) {
	supplier, err := s.repo.FindSupplierByID(ctx, id)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("s.repo.FindSupplierByID -> %w", err)
	}
	return supplier, nil
}

func (s *PurchasingService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.repo.FindAllSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllSuppliers -> %w", err)
	}
	return suppliers, nil
}

func (s *PurchasingService) UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	updated, err := s.repo.UpdateSupplier(ctx, supplier)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("s.repo.UpdateSupplier -> %w", err)
	}
	return updated, nil
}

func (s *PurchasingService) DeleteSupplier(ctx context.Context, id uint) error {
	if err := s.repo.DeleteSupplier(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteSupplier -> %w", err)
	}
	return nil
}

// ── Tax configurations ────────────────────────────────────────────────────

func (s *PurchasingService) CreateTaxConfig(ctx context.Context, conf domain.TaxConfiguration) (domain.TaxConfiguration, error) {
	created, err := s.repo.CreateTaxConfig(ctx, conf)
	if err != nil {
		return domain.TaxConfiguration{}, fmt.Errorf("s.repo.CreateTaxConfig -> %w", err)
	}
	return created, nil
}

func (s *PurchasingService) ListTaxConfigs(ctx context.Context) ([]domain.TaxConfiguration, error) {
	confs, err := s.repo.FindAllTaxConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllTaxConfigs -> %w", err)
	}
	return confs, nil
}

// ── Item supplier links ───────────────────────────────────────────────────

func (s *PurchasingService) LinkItemSupplier(ctx context.Context, link domain.ItemSupplier) (domain.ItemSupplier, error) {
	if _, err := s.inventory.GetItem(ctx, link.ItemID); err != nil {
		return domain.ItemSupplier{}, fmt.Errorf("s.inventory.GetItem -> %w", err)
	}
	if _, err := s.repo.FindSupplierByID(ctx, link.SupplierID); err != nil {
		return domain.ItemSupplier{}, fmt.Errorf("s.repo.FindSupplierByID -> %w", err)
	}

	created, err := s.repo.LinkItemSupplier(ctx, link)
	if err != nil {
		return domain.ItemSupplier{}, fmt.Errorf("s.repo.LinkItemSupplier -> %w", err)
	}
	return created, nil
}

func (s *PurchasingService) UnlinkItemSupplier(ctx context.Context, itemID, supplierID uint) error {
	if err := s.repo.UnlinkItemSupplier(ctx, itemID, supplierID); err != nil {
		return fmt.Errorf("s.repo.UnlinkItemSupplier -> %w", err)
	}
	return nil
}

func (s *PurchasingService) ListItemSuppliers(ctx context.Context, itemID uint) ([]domain.ItemSupplier, error) {
	links, err := s.repo.FindItemSuppliersByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindItemSuppliersByItemID -> %w", err)
	}
	return links, nil
}

// ── Purchase orders ───────────────────────────────────────────────────────

// CreateOrder validates the supplier and every line item, computes the
// order total and persists the order as a draft.
func (s *PurchasingService) CreateOrder(ctx context.Context, order domain.PurchaseOrder) (domain.PurchaseOrder, error) {
	if len(order.Lines) == 0 {
		return domain.PurchaseOrder{}, ErrOrderHasNoLines
	}

	if _, err := s.repo.FindSupplierByID(ctx, order.SupplierID); err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("s.repo.FindSupplierByID -> %w", err)
	}

	total := decimal.Zero
	for i := range order.Lines {
		line := &order.Lines[i]
		if !line.QtyOrdered.IsPositive() {
			return domain.PurchaseOrder{}, ErrInvalidQuantity
		}
		if _, err := s.inventory.GetItem(ctx, line.ItemID); err != nil {
			return domain.PurchaseOrder{}, fmt.Errorf("s.inventory.GetItem -> %w", err)
		}
		if line.TaxConfigID != nil {
			if _, err := s.repo.FindTaxConfigByID(ctx, *line.TaxConfigID); err != nil {
				return domain.PurchaseOrder{}, fmt.Errorf("s.repo.FindTaxConfigByID -> %w", err)
			}
		}
		line.ID = uuid.New()
		total = total.Add(line.QtyOrdered.Mul(line.UnitPrice))
	}

	order.ID = uuid.New()
	order.Status = domain.POStatusDraft
	order.Total = total
	if order.OrderedAt.IsZero() {
		order.OrderedAt = time.Now()
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("s.repo.CreateOrder -> %w", err)
	}
	return created, nil
}

func (s *PurchasingService) GetOrder(ctx context.Context, id uuid.UUID) (domain.PurchaseOrder, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("s.repo.FindOrderByID -> %w", err)
	}
	return order, nil
}

func (s *PurchasingService) SubmitOrder(ctx context.Context, id uuid.UUID) (domain.PurchaseOrder, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("s.repo.FindOrderByID -> %w", err)
	}
	if order.Status != domain.POStatusDraft {
		return domain.PurchaseOrder{}, ErrOrderNotDraft
	}

	if err = s.repo.UpdateOrderStatus(ctx, id, domain.POStatusSubmitted); err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("s.repo.UpdateOrderStatus -> %w", err)
	}

	order.Status = domain.POStatusSubmitted
	return order, nil
}

// ReceiveOrderLine books a goods receipt against an order line. The
// received quantity lands in inventory staging pending verification, and
// the order status advances when every line is complete. When the staging
// receipt fails the line booking is rolled back so the order never records
// goods that are not in stock.
func (s *PurchasingService) ReceiveOrderLine(ctx context.Context, orderID, lineID uuid.UUID, qty decimal.Decimal) (domain.PurchaseOrder, error) {
	if !qty.IsPositive() {
		return domain.PurchaseOrder{}, ErrInvalidQuantity
	}

	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("s.repo.FindOrderByID -> %w", err)
	}
	if !order.CanReceive() {
		return domain.PurchaseOrder{}, ErrOrderNotReceivable
	}

	var itemID uint
	found := false
	for i := range order.Lines {
		if order.Lines[i].ID == lineID {
			itemID = order.Lines[i].ItemID
			found = true
			break
		}
	}
	if !found {
		return domain.PurchaseOrder{}, ErrOrderLineNotFound
	}

	if _, err = s.repo.ReceiveOrderLine(ctx, lineID, qty); err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("s.repo.ReceiveOrderLine -> %w", err)
	}

	reference := fmt.Sprintf("po:%v", orderID)
	if _, err = s.inventory.ReceiveStock(ctx, itemID, qty, true, reference); err != nil {
		err = fmt.Errorf("s.inventory.ReceiveStock -> %w", err)
		if rbErr := s.repo.RollbackOrderLineReceipt(ctx, lineID, qty); rbErr != nil {
			return domain.PurchaseOrder{}, errors.Join(err, fmt.Errorf("s.repo.RollbackOrderLineReceipt -> %w", rbErr))
		}
		return domain.PurchaseOrder{}, err
	}

	order, err = s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("s.repo.FindOrderByID -> %w", err)
	}

	status := domain.POStatusPartiallyReceived
	if order.FullyReceived() {
		status = domain.POStatusReceived
	}
	if order.Status != status {
		if err = s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
			return domain.PurchaseOrder{}, fmt.Errorf("s.repo.UpdateOrderStatus -> %w", err)
		}
		order.Status = status
	}

	return order, nil
}
