package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/request"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/response"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/moduleapi"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/service"
)

type InventoryService interface {
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	GetCategory(ctx context.Context, id uint) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateUnit(ctx context.Context, unit domain.UnitOfMeasure) (domain.UnitOfMeasure, error)
	GetUnit(ctx context.Context, id uint) (domain.UnitOfMeasure, error)
	ListUnits(ctx context.Context) ([]domain.UnitOfMeasure, error)
	UpdateUnit(ctx context.Context, unit domain.UnitOfMeasure) (domain.UnitOfMeasure, error)
	DeleteUnit(ctx context.Context, id uint) error

	CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)

	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	GetItem(ctx context.Context, id uint) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, id uint) error

	CreateConversion(ctx context.Context, conversion domain.ItemUnitConversion) (domain.ItemUnitConversion, error)
	ListConversions(ctx context.Context, itemID uint) ([]domain.ItemUnitConversion, error)

	ReserveStock(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)
	ReleaseStock(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)
	ReceiveStock(ctx context.Context, itemID uint, qty decimal.Decimal, toStaging bool, reference string) (domain.Item, error)
	VerifyStagedStock(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)
	ShipStock(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)
	ListMovements(ctx context.Context, itemID uint) ([]domain.StockMovement, error)

	CheckStockAvailability(ctx context.Context, req moduleapi.StockAvailabilityRequest) (moduleapi.StockAvailabilityResponse, error)
}

type InventoryHandler struct {
	svc InventoryService
}

func NewInventoryHandler(svc InventoryService) *InventoryHandler {
	return &InventoryHandler{
		svc: svc,
	}
}

// ── Categories ────────────────────────────────────────────────────────────

// HandleCreateCategory godoc
// @Summary      Create an item category
// @Tags         inventory
// @Produce      json
// @Param        request   body      request.CreateCategoryRequest true "request body"
// @Success      201      {object}   domain.Category
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /inventory/categories [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleCreateCategory(ctx *gin.Context) {
	var req request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	category, err := h.svc.CreateCategory(ctx.Request.Context(), domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryNameExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateCategory -> h.svc.CreateCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// HandleListCategories godoc
// @Summary      List item categories
// @Tags         inventory
// @Produce      json
// @Success      200 {object} []domain.Category
// @Failure      500 {object} response.Err
// @Router       /inventory/categories [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleListCategories(ctx *gin.Context) {
	categories, err := h.svc.ListCategories(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCategories -> h.svc.ListCategories -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleGetCategory godoc
// @Summary      Get an item category
// @Tags         inventory
// @Produce      json
// @Param        categoryID   path    int  true  "category ID"
// @Success      200 {object} domain.Category
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/categories/{categoryID} [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleGetCategory(ctx *gin.Context) {
	categoryID, err := parseUintParam(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	category, err := h.svc.GetCategory(ctx.Request.Context(), categoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", categoryID))

			return
		}

		err = fmt.Errorf("v1.HandleGetCategory -> h.svc.GetCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, category)
}

// HandleUpdateCategory godoc
// @Summary      Update an item category
// @Tags         inventory
// @Produce      json
// @Param        categoryID   path    int  true  "category ID"
// @Param        request      body    request.CreateCategoryRequest true "request body"
// @Success      200 {object} domain.Category
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/categories/{categoryID} [put]
// @Security     BearerToken
func (h *InventoryHandler) HandleUpdateCategory(ctx *gin.Context) {
	categoryID, err := parseUintParam(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateCategoryRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	category, err := h.svc.UpdateCategory(ctx.Request.Context(), domain.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", categoryID))
		case errors.Is(err, service.ErrCategoryNameExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryNameExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateCategory -> h.svc.UpdateCategory -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, category)
}

// HandleDeleteCategory godoc
// @Summary      Delete an item category
// @Tags         inventory
// @Produce      json
// @Param        categoryID   path    int  true  "category ID"
// @Success      204
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/categories/{categoryID} [delete]
// @Security     BearerToken
func (h *InventoryHandler) HandleDeleteCategory(ctx *gin.Context) {
	categoryID, err := parseUintParam(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteCategory(ctx.Request.Context(), categoryID); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", categoryID))
		case errors.Is(err, service.ErrCategoryInUse):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryInUse))
		default:
			err = fmt.Errorf("v1.HandleDeleteCategory -> h.svc.DeleteCategory -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// ── Units of measure ──────────────────────────────────────────────────────

// HandleCreateUnit godoc
// @Summary      Create a unit of measure
// @Tags         inventory
// @Produce      json
// @Param        request   body      request.CreateUnitRequest true "request body"
// @Success      201      {object}   domain.UnitOfMeasure
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /inventory/units [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleCreateUnit(ctx *gin.Context) {
	var req request.CreateUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	unit, err := h.svc.CreateUnit(ctx.Request.Context(), domain.UnitOfMeasure{
		Symbol: req.Symbol,
		Name:   req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnitSymbolExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUnitSymbolExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateUnit -> h.svc.CreateUnit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, unit)
}

// HandleListUnits godoc
// @Summary      List units of measure
// @Tags         inventory
// @Produce      json
// @Success      200 {object} []domain.UnitOfMeasure
// @Failure      500 {object} response.Err
// @Router       /inventory/units [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleListUnits(ctx *gin.Context) {
	units, err := h.svc.ListUnits(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUnits -> h.svc.ListUnits -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, units)
}

// HandleGetUnit godoc
// @Summary      Get a unit of measure
// @Tags         inventory
// @Produce      json
// @Param        unitID   path    int  true  "unit ID"
// @Success      200 {object} domain.UnitOfMeasure
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/units/{unitID} [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleGetUnit(ctx *gin.Context) {
	unitID, err := parseUintParam(ctx, "unitID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	unit, err := h.svc.GetUnit(ctx.Request.Context(), unitID)
	if err != nil {
		if errors.Is(err, service.ErrUnitNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("unit", "ID", unitID))

			return
		}

		err = fmt.Errorf("v1.HandleGetUnit -> h.svc.GetUnit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, unit)
}

// HandleUpdateUnit godoc
// @Summary      Update a unit of measure
// @Tags         inventory
// @Produce      json
// @Param        unitID   path    int  true  "unit ID"
// @Param        request  body    request.CreateUnitRequest true "request body"
// @Success      200 {object} domain.UnitOfMeasure
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/units/{unitID} [put]
// @Security     BearerToken
func (h *InventoryHandler) HandleUpdateUnit(ctx *gin.Context) {
	unitID, err := parseUintParam(ctx, "unitID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateUnitRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	unit, err := h.svc.UpdateUnit(ctx.Request.Context(), domain.UnitOfMeasure{
		ID:     unitID,
		Symbol: req.Symbol,
		Name:   req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnitNotFound):
			response.RenderErr(ctx, response.ErrNotFound("unit", "ID", unitID))
		case errors.Is(err, service.ErrUnitSymbolExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUnitSymbolExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateUnit -> h.svc.UpdateUnit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, unit)
}

// HandleDeleteUnit godoc
// @Summary      Delete a unit of measure
// @Tags         inventory
// @Produce      json
// @Param        unitID   path    int  true  "unit ID"
// @Success      204
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/units/{unitID} [delete]
// @Security     BearerToken
func (h *InventoryHandler) HandleDeleteUnit(ctx *gin.Context) {
	unitID, err := parseUintParam(ctx, "unitID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteUnit(ctx.Request.Context(), unitID); err != nil {
		switch {
		case errors.Is(err, service.ErrUnitNotFound):
			response.RenderErr(ctx, response.ErrNotFound("unit", "ID", unitID))
		case errors.Is(err, service.ErrUnitInUse):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUnitInUse))
		default:
			err = fmt.Errorf("v1.HandleDeleteUnit -> h.svc.DeleteUnit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// ── Warehouses ────────────────────────────────────────────────────────────

// HandleCreateWarehouse godoc
// @Summary      Create a warehouse
// @Tags         inventory
// @Produce      json
// @Param        request   body      request.CreateWarehouseRequest true "request body"
// @Success      201      {object}   domain.Warehouse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /inventory/warehouses [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleCreateWarehouse(ctx *gin.Context) {
	var req request.CreateWarehouseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	warehouse, err := h.svc.CreateWarehouse(ctx.Request.Context(), domain.Warehouse{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrWarehouseCodeExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrWarehouseCodeExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateWarehouse -> h.svc.CreateWarehouse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, warehouse)
}

// HandleListWarehouses godoc
// @Summary      List warehouses
// @Tags         inventory
// @Produce      json
// @Success      200 {object} []domain.Warehouse
// @Failure      500 {object} response.Err
// @Router       /inventory/warehouses [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleListWarehouses(ctx *gin.Context) {
	warehouses, err := h.svc.ListWarehouses(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListWarehouses -> h.svc.ListWarehouses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, warehouses)
}

// ── Items ─────────────────────────────────────────────────────────────────

// HandleCreateItem godoc
// @Summary      Create an inventory item
// @Tags         inventory
// @Produce      json
// @Param        request   body      request.CreateItemRequest true "request body"
// @Success      201      {object}   domain.Item
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /inventory/items [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleCreateItem(ctx *gin.Context) {
	var req request.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	unitCost, _ := decimal.NewFromString(req.UnitCost)
	onHand := decimal.Zero
	if req.OnHand != "" {
		onHand, _ = decimal.NewFromString(req.OnHand)
	}

	item, err := h.svc.CreateItem(ctx.Request.Context(), domain.Item{
		SKU:          req.SKU,
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		BaseUnitID:   req.BaseUnitID,
		WarehouseID:  req.WarehouseID,
		LocationCode: req.LocationCode,
		UnitCost:     unitCost,
		OnHand:       onHand,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemSKUExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrItemSKUExists))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", req.CategoryID))
		case errors.Is(err, service.ErrUnitNotFound):
			response.RenderErr(ctx, response.ErrNotFound("unit", "ID", req.BaseUnitID))
		case errors.Is(err, service.ErrWarehouseNotFound):
			response.RenderErr(ctx, response.ErrNotFound("warehouse", "ID", req.WarehouseID))
		default:
			err = fmt.Errorf("v1.HandleCreateItem -> h.svc.CreateItem -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleGetItem godoc
// @Summary      Get an inventory item
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Success      200 {object} domain.Item
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID} [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleGetItem(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	item, err := h.svc.GetItem(ctx.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))

			return
		}

		err = fmt.Errorf("v1.HandleGetItem -> h.svc.GetItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleListItems godoc
// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Success      200 {object} []domain.Item
// @Failure      500 {object} response.Err
// @Router       /inventory/items [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleListItems(ctx *gin.Context) {
	items, err := h.svc.ListItems(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListItems -> h.svc.ListItems -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleUpdateItem godoc
// @Summary      Update an inventory item
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Param        request  body    request.UpdateItemRequest true "request body"
// @Success      200 {object} domain.Item
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID} [put]
// @Security     BearerToken
func (h *InventoryHandler) HandleUpdateItem(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateItemRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	unitCost, _ := decimal.NewFromString(req.UnitCost)

	item, err := h.svc.UpdateItem(ctx.Request.Context(), domain.Item{
		ID:           itemID,
		Name:         req.Name,
		WarehouseID:  req.WarehouseID,
		LocationCode: req.LocationCode,
		UnitCost:     unitCost,
	})
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateItem -> h.svc.UpdateItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleDeleteItem godoc
// @Summary      Delete an inventory item
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Success      204
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID} [delete]
// @Security     BearerToken
func (h *InventoryHandler) HandleDeleteItem(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteItem(ctx.Request.Context(), itemID); err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
		case errors.Is(err, service.ErrItemHasSupplierLinks):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrItemHasSupplierLinks))
		default:
			err = fmt.Errorf("v1.HandleDeleteItem -> h.svc.DeleteItem -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// ── Unit conversions ──────────────────────────────────────────────────────

// HandleCreateConversion godoc
// @Summary      Create a unit conversion for an item
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Param        request  body    request.CreateConversionRequest true "request body"
// @Success      201 {object} domain.ItemUnitConversion
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID}/conversions [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleCreateConversion(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateConversionRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	factor, _ := decimal.NewFromString(req.Factor)

	conversion, err := h.svc.CreateConversion(ctx.Request.Context(), domain.ItemUnitConversion{
		ItemID:     itemID,
		FromUnitID: req.FromUnitID,
		ToUnitID:   req.ToUnitID,
		Factor:     factor,
	})
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))

			return
		}

		err = fmt.Errorf("v1.HandleCreateConversion -> h.svc.CreateConversion -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, conversion)
}

// HandleListConversions godoc
// @Summary      List unit conversions for an item
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Success      200 {object} []domain.ItemUnitConversion
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID}/conversions [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleListConversions(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	conversions, err := h.svc.ListConversions(ctx.Request.Context(), itemID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListConversions -> h.svc.ListConversions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, conversions)
}

// ── Stock operations ──────────────────────────────────────────────────────

type stockOperation func(ctx context.Context, itemID uint, qty decimal.Decimal, reference string) (domain.Item, error)

func (h *InventoryHandler) handleStockOperation(ctx *gin.Context, name string, op stockOperation) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.StockOperationRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	qty, _ := decimal.NewFromString(req.Quantity)

	item, err := op(ctx.Request.Context(), itemID, qty, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidQuantity))
		case errors.Is(err, service.ErrInsufficientStock):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInsufficientStock))
		case errors.Is(err, service.ErrInsufficientReserved):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInsufficientReserved))
		case errors.Is(err, service.ErrInsufficientStaging):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInsufficientStaging))
		default:
			err = fmt.Errorf("v1.%v -> %w", name, err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewStockResponse(item))
}

// HandleReserveStock godoc
// @Summary      Reserve available stock for an item
// @Description  Atomically moves quantity from available into reserved. Fails without side effects when available stock is insufficient.
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Param        request  body    request.StockOperationRequest true "request body"
// @Success      200 {object} response.StockResponse
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID}/stock/reserve [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleReserveStock(ctx *gin.Context) {
	h.handleStockOperation(ctx, "HandleReserveStock", h.svc.ReserveStock)
}

// HandleReleaseStock godoc
// @Summary      Release reserved stock back to available
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Param        request  body    request.StockOperationRequest true "request body"
// @Success      200 {object} response.StockResponse
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID}/stock/release [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleReleaseStock(ctx *gin.Context) {
	h.handleStockOperation(ctx, "HandleReleaseStock", h.svc.ReleaseStock)
}

// HandleReceiveStock godoc
// @Summary      Receive stock into staging or on-hand
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Param        request  body    request.ReceiveStockRequest true "request body"
// @Success      200 {object} response.StockResponse
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID}/stock/receive [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleReceiveStock(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ReceiveStockRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	qty, _ := decimal.NewFromString(req.Quantity)

	item, err := h.svc.ReceiveStock(ctx.Request.Context(), itemID, qty, req.ToStaging, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidQuantity))
		default:
			err = fmt.Errorf("v1.HandleReceiveStock -> h.svc.ReceiveStock -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewStockResponse(item))
}

// HandleVerifyStagedStock godoc
// @Summary      Verify staged stock into on-hand
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Param        request  body    request.StockOperationRequest true "request body"
// @Success      200 {object} response.StockResponse
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID}/stock/verify [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleVerifyStagedStock(ctx *gin.Context) {
	h.handleStockOperation(ctx, "HandleVerifyStagedStock", h.svc.VerifyStagedStock)
}

// HandleShipStock godoc
// @Summary      Ship reserved stock
// @Description  Consumes a reservation, deducting on-hand and reserved together.
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Param        request  body    request.StockOperationRequest true "request body"
// @Success      200 {object} response.StockResponse
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID}/stock/ship [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleShipStock(ctx *gin.Context) {
	h.handleStockOperation(ctx, "HandleShipStock", h.svc.ShipStock)
}

// HandleListMovements godoc
// @Summary      List stock movements for an item
// @Tags         inventory
// @Produce      json
// @Param        itemID   path    int  true  "item ID"
// @Success      200 {object} []domain.StockMovement
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/items/{itemID}/movements [get]
// @Security     BearerToken
func (h *InventoryHandler) HandleListMovements(ctx *gin.Context) {
	itemID, err := parseUintParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	movements, err := h.svc.ListMovements(ctx.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))

			return
		}

		err = fmt.Errorf("v1.HandleListMovements -> h.svc.ListMovements -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, movements)
}

// HandleCheckAvailability godoc
// @Summary      Check stock availability for a list of materials
// @Tags         inventory
// @Produce      json
// @Param        request  body    request.CheckAvailabilityRequest true "request body"
// @Success      200 {object} moduleapi.StockAvailabilityResponse
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /inventory/stock/availability [post]
// @Security     BearerToken
func (h *InventoryHandler) HandleCheckAvailability(ctx *gin.Context) {
	var req request.CheckAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	materials := make([]moduleapi.MaterialLine, len(req.Materials))
	for i, m := range req.Materials {
		qty, _ := decimal.NewFromString(m.Quantity)
		materials[i] = moduleapi.MaterialLine{
			SKU:      m.SKU,
			Quantity: qty,
		}
	}

	resp, err := h.svc.CheckStockAvailability(ctx.Request.Context(), moduleapi.StockAvailabilityRequest{
		Materials: materials,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckAvailability -> h.svc.CheckStockAvailability -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, resp)
}
