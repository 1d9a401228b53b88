package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/request"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/response"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/service"
)

type PurchasingService interface {
	CreateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	GetSupplier(ctx context.Context, id uint) (domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id uint) error

	CreateTaxConfig(ctx context.Context, conf domain.TaxConfiguration) (domain.TaxConfiguration, error)
	ListTaxConfigs(ctx context.Context) ([]domain.TaxConfiguration, error)

	LinkItemSupplier(ctx context.Context, link domain.ItemSupplier) (domain.ItemSupplier, error)
	UnlinkItemSupplier(ctx context.Context, itemID, supplierID uint) error
	ListItemSuppliers(ctx context.Context, itemID uint) ([]domain.ItemSupplier, error)

	CreateOrder(ctx context.Context, order domain.PurchaseOrder) (domain.PurchaseOrder, error)
	GetOrder(ctx context.Context, id uuid.UUID) (domain.PurchaseOrder, error)
	SubmitOrder(ctx context.Context, id uuid.UUID) (domain.PurchaseOrder, error)
	ReceiveOrderLine(ctx context.Context, orderID, lineID uuid.UUID, qty decimal.Decimal) (domain.PurchaseOrder, error)
}

type PurchasingHandler struct {
	svc PurchasingService
}

func NewPurchasingHandler(svc PurchasingService) *PurchasingHandler {
	return &PurchasingHandler{
		svc: svc,
	}
}

// ── Suppliers ─────────────────────────────────────────────────────────────

// HandleCreateSupplier godoc
// @Summary      Create a supplier
// @Tags         purchasing
// @Produce      json
// @Param        request   body      request.CreateSupplierRequest true "request body"
// @Success      201      {object}   domain.Supplier
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /purchasing/suppliers [post]
// @Security     BearerToken
func (h *PurchasingHandler) HandleCreateSupplier(ctx *gin.Context) {
	var req request.CreateSupplierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	supplier, err := h.svc.CreateSupplier(ctx.Request.Context(), domain.Supplier{
		Name:  req.Name,
		TaxID: req.TaxID,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrSupplierNameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSupplierNameExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateSupplier -> h.svc.CreateSupplier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, supplier)
}

// HandleListSuppliers godoc
// @Summary      List suppliers
// @Tags         purchasing
// @Produce      json
// @Success      200 {object} []domain.Supplier
// @Failure      500 {object} response.Err
// @Router       /purchasing/suppliers [get]
// @Security     BearerToken
func (h *PurchasingHandler) HandleListSuppliers(ctx *gin.Context) {
	suppliers, err := h.svc.ListSuppliers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSuppliers -> h.svc.ListSuppliers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, suppliers)
}

// HandleGetSupplier godoc
// @Summary      Get a supplier
// @Tags         purchasing
// @Produce      json
// @Param        supplierID   path    int  true  "supplier ID"
// @Success      200 {object} domain.Supplier
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /purchasing/suppliers/{supplierID} [get]
// @Security     BearerToken
func (h *PurchasingHandler) HandleGetSupplier(ctx *gin.Context) {
	supplierID, err := parseUintParam(ctx, "supplierID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	supplier, err := h.svc.GetSupplier(ctx.Request.Context(), supplierID)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("supplier", "ID", supplierID))

			return
		}

		err = fmt.Errorf("v1.HandleGetSupplier -> h.svc.GetSupplier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, supplier)
}

// HandleUpdateSupplier godoc
// @Summary      Update a supplier
// @Tags         purchasing
// @Produce      json
// @Param        supplierID   path    int  true  "supplier ID"
// @Param        request      body    request.UpdateSupplierRequest true "request body"
// @Success      200 {object} domain.Supplier
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /purchasing/suppliers/{supplierID} [put]
// @Security     BearerToken
func (h *PurchasingHandler) HandleUpdateSupplier(ctx *gin.Context) {
	supplierID, err := parseUintParam(ctx, "supplierID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateSupplierRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	supplier, err := h.svc.GetSupplier(ctx.Request.Context(), supplierID)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("supplier", "ID", supplierID))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateSupplier -> h.svc.GetSupplier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	supplier.Name = req.Name
	supplier.TaxID = req.TaxID
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	updated, err := h.svc.UpdateSupplier(ctx.Request.Context(), supplier)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupplierNotFound):
			response.RenderErr(ctx, response.ErrNotFound("supplier", "ID", supplierID))
		case errors.Is(err, service.ErrSupplierNameExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSupplierNameExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateSupplier -> h.svc.UpdateSupplier -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteSupplier godoc
// @Summary      Delete a supplier
// @Tags         purchasing
// @Produce      json
// @Param        supplierID   path    int  true  "supplier ID"
// @Success      204
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /purchasing/suppliers/{supplierID} [delete]
// @Security     BearerToken
func (h *PurchasingHandler) HandleDeleteSupplier(ctx *gin.Context) {
	supplierID, err := parseUintParam(ctx, "supplierID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteSupplier(ctx.Request.Context(), supplierID); err != nil {
		switch {
		case errors.Is(err, service.ErrSupplierNotFound):
			response.RenderErr(ctx, response.ErrNotFound("supplier", "ID", supplierID))
		case errors.Is(err, service.ErrSupplierInUse):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSupplierInUse))
		default:
			err = fmt.Errorf("v1.HandleDeleteSupplier -> h.svc.DeleteSupplier -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// ── Tax configurations ────────────────────────────────────────────────────

// HandleCreateTaxConfig godoc
// @Summary      Create a tax configuration
// @Tags         purchasing
// @Produce      json
// @Param        request   body      request.CreateTaxConfigRequest true "request body"
// @Success      201      {object}   domain.TaxConfiguration
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /purchasing/tax-configs [post]
// @Security     BearerToken
func (h *PurchasingHandler) HandleCreateTaxConfig(ctx *gin.Context) {
	var req request.CreateTaxConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rate, _ := decimal.NewFromString(req.Rate)

	conf, err := h.svc.CreateTaxConfig(ctx.Request.Context(), domain.TaxConfiguration{
		Code:        req.Code,
		Description: req.Description,
		Rate:        rate,
	})
	if err != nil {
		if errors.Is(err, service.ErrTaxConfigCodeExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTaxConfigCodeExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateTaxConfig -> h.svc.CreateTaxConfig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, conf)
}

// HandleListTaxConfigs godoc
// @Summary      List tax configurations
// @Tags         purchasing
// @Produce      json
// @Success      200 {object} []domain.TaxConfiguration
// @Failure      500 {object} response.Err
// @Router       /purchasing/tax-configs [get]
// @Security     BearerToken
func (h *PurchasingHandler) HandleListTaxConfigs(ctx *gin.Context) {
	confs, err := h.svc.ListTaxConfigs(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTaxConfigs -> h.svc.ListTaxConfigs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, confs)
}

// ── Item supplier links ───────────────────────────────────────────────────

// HandleLinkItemSupplier godoc
// @Summary      Link an item to a supplier
// @Tags         purchasing
// @Produce      json
// @Param        request   body      request.LinkItemSupplierRequest true "request body"
// @Success      201      {object}   domain.ItemSupplier
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /purchasing/item-suppliers [post]
// @Security     BearerToken
func (h *PurchasingHandler) HandleLinkItemSupplier(ctx *gin.Context) {
	var req request.LinkItemSupplierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	lastPrice := decimal.Zero
	if req.LastPrice != "" {
		lastPrice, _ = decimal.NewFromString(req.LastPrice)
	}

	link, err := h.svc.LinkItemSupplier(ctx.Request.Context(), domain.ItemSupplier{
		ItemID:           req.ItemID,
		SupplierID:       req.SupplierID,
		SupplierItemCode: req.SupplierItemCode,
		LeadTimeDays:     req.LeadTimeDays,
		LastPrice:        lastPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", req.ItemID))
		case errors.Is(err, service.ErrSupplierNotFound):
			response.RenderErr(ctx, response.ErrNotFound("supplier", "ID", req.SupplierID))
		case errors.Is(err, service.ErrItemSupplierExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrItemSupplierExists))
		default:
			err = fmt.Errorf("v1.HandleLinkItemSupplier -> h.svc.LinkItemSupplier -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, link)
}

// HandleUnlinkItemSupplier godoc
// @Summary      Remove an item supplier link
// @Tags         purchasing
// @Produce      json
// @Param        itemID       path    int  true  "item ID"
// @Param        supplierID   path    int  true  "supplier ID"
// @Success      204
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /purchasing/item-suppliers/{itemID}/{supplierID} [delete]
// @Security     BearerToken
func (h *PurchasingHandler) HandleUnlinkItemSupplier(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	supplierID, err := parseUintParam(ctx, "supplierID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.UnlinkItemSupplier(ctx.Request.Context(), itemID, supplierID); err != nil {
		if errors.Is(err, service.ErrItemSupplierNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item supplier link", "item ID", itemID))

			return
		}

		err = fmt.Errorf("v1.HandleUnlinkItemSupplier -> h.svc.UnlinkItemSupplier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListItemSuppliers godoc
// @Summary      List supplier links for an item
// @Tags         purchasing
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Success      200 {object} []domain.ItemSupplier
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /purchasing/item-suppliers/{itemID} [get]
// @Security     BearerToken
func (h *PurchasingHandler) HandleListItemSuppliers(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	links, err := h.svc.ListItemSuppliers(ctx.Request.Context(), itemID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListItemSuppliers -> h.svc.ListItemSuppliers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, links)
}

// ── Purchase orders ───────────────────────────────────────────────────────

// HandleCreateOrder godoc
// @Summary      Create a purchase order in draft status
// @Tags         purchasing
// @Produce      json
// @Param        request   body      request.CreateOrderRequest true "request body"
// @Success      201      {object}   domain.PurchaseOrder
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /purchasing/orders [post]
// @Security     BearerToken
func (h *PurchasingHandler) HandleCreateOrder(ctx *gin.Context) {
	var req request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	lines := make([]domain.PurchaseOrderLine, len(req.Lines))
	for i, l := range req.Lines {
		qty, _ := decimal.NewFromString(l.QtyOrdered)
		price, _ := decimal.NewFromString(l.UnitPrice)
		lines[i] = domain.PurchaseOrderLine{
			ItemID:      l.ItemID,
			QtyOrdered:  qty,
			UnitPrice:   price,
			TaxConfigID: l.TaxConfigID,
		}
	}

	order := domain.PurchaseOrder{
		SupplierID: req.SupplierID,
		Currency:   req.Currency,
		Lines:      lines,
	}
	if req.ExpectedAt != "" {
		expectedAt, err := time.Parse(time.RFC3339, req.ExpectedAt)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid expected_at (%v)", req.ExpectedAt)))

			return
		}
		order.ExpectedAt = &expectedAt
	}

	created, err := h.svc.CreateOrder(ctx.Request.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupplierNotFound):
			response.RenderErr(ctx, response.ErrNotFound("supplier", "ID", req.SupplierID))
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrItemNotFound))
		case errors.Is(err, service.ErrTaxConfigNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTaxConfigNotFound))
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidQuantity))
		default:
			err = fmt.Errorf("v1.HandleCreateOrder -> h.svc.CreateOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetOrder godoc
// @Summary      Get a purchase order with its lines
// @Tags         purchasing
// @Produce      json
// @Param        orderID   path    string  true  "order ID"
// @Success      200 {object} domain.PurchaseOrder
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /purchasing/orders/{orderID} [get]
// @Security     BearerToken
func (h *PurchasingHandler) HandleGetOrder(ctx *gin.Context) {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("purchase order", "ID", orderID))

			return
		}

		err = fmt.Errorf("v1.HandleGetOrder -> h.svc.GetOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleSubmitOrder godoc
// @Summary      Submit a draft purchase order
// @Tags         purchasing
// @Produce      json
// @Param        orderID   path    string  true  "order ID"
// @Success      200 {object} domain.PurchaseOrder
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /purchasing/orders/{orderID}/submit [post]
// @Security     BearerToken
func (h *PurchasingHandler) HandleSubmitOrder(ctx *gin.Context) {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.SubmitOrder(ctx.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("purchase order", "ID", orderID))
		case errors.Is(err, service.ErrOrderNotDraft):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrOrderNotDraft))
		default:
			err = fmt.Errorf("v1.HandleSubmitOrder -> h.svc.SubmitOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleReceiveOrderLine godoc
// @Summary      Receive goods against a purchase order line
// @Description  The received quantity lands in inventory staging pending verification.
// @Tags         purchasing
// @Produce      json
// @Param        orderID   path    string  true  "order ID"
// @Param        request   body    request.ReceiveOrderLineRequest true "request body"
// @Success      200 {object} domain.PurchaseOrder
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /purchasing/orders/{orderID}/receive [post]
// @Security     BearerToken
func (h *PurchasingHandler) HandleReceiveOrderLine(ctx *gin.Context) {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ReceiveOrderLineRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	lineID, err := uuid.Parse(req.LineID)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid line_id (%v)", req.LineID)))

		return
	}

	qty, _ := decimal.NewFromString(req.Quantity)

	order, err := h.svc.ReceiveOrderLine(ctx.Request.Context(), orderID, lineID, qty)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("purchase order", "ID", orderID))
		case errors.Is(err, service.ErrOrderLineNotFound):
			response.RenderErr(ctx, response.ErrNotFound("purchase order line", "ID", lineID))
		case errors.Is(err, service.ErrOrderNotReceivable):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrOrderNotReceivable))
		case errors.Is(err, service.ErrOverReceipt):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrOverReceipt))
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidQuantity))
		default:
			err = fmt.Errorf("v1.HandleReceiveOrderLine -> h.svc.ReceiveOrderLine -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, order)
}
