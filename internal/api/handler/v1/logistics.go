package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/request"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/response"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/moduleapi"
	"github.com/RoyAPena/HeuristicLogix-sub003/internal/service"
)

type LogisticsService interface {
	CreateTruck(ctx context.Context, truck domain.Truck) (domain.Truck, error)
	GetTruck(ctx context.Context, id uint) (domain.Truck, error)
	ListActiveTrucks(ctx context.Context) ([]domain.Truck, error)

	CreateTaxonomy(ctx context.Context, taxonomy domain.ProductTaxonomy) (domain.ProductTaxonomy, error)
	ListTaxonomies(ctx context.Context) ([]domain.ProductTaxonomy, error)
	VerifyTaxonomy(ctx context.Context, id uuid.UUID, verifiedBy uint) (domain.ProductTaxonomy, error)

	RecordDelivery(ctx context.Context, delivery domain.Delivery, orderValue decimal.Decimal) (domain.Delivery, error)
	GetDelivery(ctx context.Context, id uuid.UUID) (domain.Delivery, error)
	ListDeliveries(ctx context.Context, clientName string, limit, offset int) ([]domain.Delivery, error)

	SuggestTruck(ctx context.Context, req moduleapi.TruckSuggestionRequest) (moduleapi.TruckSuggestionResponse, error)
}

type LogisticsHandler struct {
	svc LogisticsService
}

func NewLogisticsHandler(svc LogisticsService) *LogisticsHandler {
	return &LogisticsHandler{
		svc: svc,
	}
}

// ── Trucks ────────────────────────────────────────────────────────────────

// HandleCreateTruck godoc
// @Summary      Register a truck
// @Tags         logistics
// @Produce      json
// @Param        request   body      request.CreateTruckRequest true "request body"
// @Success      201      {object}   domain.Truck
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /logistics/trucks [post]
// @Security     BearerToken
func (h *LogisticsHandler) HandleCreateTruck(ctx *gin.Context) {
	var req request.CreateTruckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	capacity, _ := decimal.NewFromString(req.CapacityKg)

	truck, err := h.svc.CreateTruck(ctx.Request.Context(), domain.Truck{
		LicensePlate: req.LicensePlate,
		Type:         req.Type,
		CapacityKg:   capacity,
	})
	if err != nil {
		if errors.Is(err, service.ErrTruckPlateExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTruckPlateExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateTruck -> h.svc.CreateTruck -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, truck)
}

// HandleListTrucks godoc
// @Summary      List active trucks
// @Tags         logistics
// @Produce      json
// @Success      200 {object} []domain.Truck
// @Failure      500 {object} response.Err
// @Router       /logistics/trucks [get]
// @Security     BearerToken
func (h *LogisticsHandler) HandleListTrucks(ctx *gin.Context) {
	trucks, err := h.svc.ListActiveTrucks(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTrucks -> h.svc.ListActiveTrucks -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, trucks)
}

// ── Product taxonomies ────────────────────────────────────────────────────

// HandleCreateTaxonomy godoc
// @Summary      Create a product taxonomy entry
// @Tags         logistics
// @Produce      json
// @Param        request   body      request.CreateTaxonomyRequest true "request body"
// @Success      201      {object}   domain.ProductTaxonomy
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /logistics/taxonomies [post]
// @Security     BearerToken
func (h *LogisticsHandler) HandleCreateTaxonomy(ctx *gin.Context) {
	var req request.CreateTaxonomyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	weightFactor, _ := decimal.NewFromString(req.WeightFactor)

	taxonomy, err := h.svc.CreateTaxonomy(ctx.Request.Context(), domain.ProductTaxonomy{
		RawDescription: req.RawDescription,
		StandardDesc:   req.StandardDesc,
		Category:       domain.ProductCategory(req.Category),
		UnitSymbol:     req.UnitSymbol,
		WeightFactor:   weightFactor,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCategory))

			return
		}

		err = fmt.Errorf("v1.HandleCreateTaxonomy -> h.svc.CreateTaxonomy -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, taxonomy)
}

// HandleListTaxonomies godoc
// @Summary      List product taxonomy entries
// @Tags         logistics
// @Produce      json
// @Success      200 {object} []domain.ProductTaxonomy
// @Failure      500 {object} response.Err
// @Router       /logistics/taxonomies [get]
// @Security     BearerToken
func (h *LogisticsHandler) HandleListTaxonomies(ctx *gin.Context) {
	taxonomies, err := h.svc.ListTaxonomies(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTaxonomies -> h.svc.ListTaxonomies -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, taxonomies)
}

// HandleVerifyTaxonomy godoc
// @Summary      Verify a product taxonomy entry
// @Description  Marks the entry as expert-confirmed so its weight factor drives delivery weight calculation.
// @Tags         logistics
// @Produce      json
// @Param        taxonomyID   path    string  true  "taxonomy ID"
// @Success      200 {object} domain.ProductTaxonomy
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /logistics/taxonomies/{taxonomyID}/verify [post]
// @Security     BearerToken
func (h *LogisticsHandler) HandleVerifyTaxonomy(ctx *gin.Context) {
	taxonomyID, err := parseUUIDParam(ctx, "taxonomyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	userID, err := getUserFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	taxonomy, err := h.svc.VerifyTaxonomy(ctx.Request.Context(), taxonomyID, userID)
	if err != nil {
		if errors.Is(err, service.ErrTaxonomyNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("taxonomy", "ID", taxonomyID))

			return
		}

		err = fmt.Errorf("v1.HandleVerifyTaxonomy -> h.svc.VerifyTaxonomy -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, taxonomy)
}

// ── Deliveries ────────────────────────────────────────────────────────────

// HandleRecordDelivery godoc
// @Summary      Record a delivery
// @Description  Derives the total weight from a verified taxonomy match when possible, checks stock availability, truck capacity and customer credit.
// @Tags         logistics
// @Produce      json
// @Param        request   body      request.RecordDeliveryRequest true "request body"
// @Success      201      {object}   domain.Delivery
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /logistics/deliveries [post]
// @Security     BearerToken
func (h *LogisticsHandler) HandleRecordDelivery(ctx *gin.Context) {
	var req request.RecordDeliveryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	quantity, _ := decimal.NewFromString(req.Quantity)
	totalWeight := decimal.Zero
	if req.TotalWeightKg != "" {
		totalWeight, _ = decimal.NewFromString(req.TotalWeightKg)
	}
	serviceTime := decimal.Zero
	if req.ServiceTimeMinutes != "" {
		serviceTime, _ = decimal.NewFromString(req.ServiceTimeMinutes)
	}
	orderValue := decimal.Zero
	if req.OrderValue != "" {
		orderValue, _ = decimal.NewFromString(req.OrderValue)
	}

	delivery := domain.Delivery{
		ClientName:         req.ClientName,
		Address:            req.Address,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		TruckID:            req.TruckID,
		ItemSKU:            req.ItemSKU,
		RawDescription:     req.RawDescription,
		Quantity:           quantity,
		RawUnit:            req.RawUnit,
		TotalWeightKg:      totalWeight,
		ServiceTimeMinutes: serviceTime,
		ExpertNotes:        req.ExpertNotes,
		IngestionBatchID:   req.IngestionBatchID,
	}
	if req.DeliveryDate != "" {
		deliveryDate, err := time.Parse(time.RFC3339, req.DeliveryDate)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid delivery_date (%v)", req.DeliveryDate)))

			return
		}
		delivery.DeliveryDate = deliveryDate
	}

	created, err := h.svc.RecordDelivery(ctx.Request.Context(), delivery, orderValue)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTruckNotFound):
			response.RenderErr(ctx, response.ErrNotFound("truck", "ID", req.TruckID))
		case errors.Is(err, service.ErrTruckOverloaded):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTruckOverloaded))
		case errors.Is(err, service.ErrMissingWeight):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMissingWeight))
		case errors.Is(err, service.ErrCreditDeclined):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCreditDeclined))
		case errors.Is(err, service.ErrInsufficientStock):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInsufficientStock))
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidQuantity))
		default:
			err = fmt.Errorf("v1.HandleRecordDelivery -> h.svc.RecordDelivery -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetDelivery godoc
// @Summary      Get a delivery
// @Tags         logistics
// @Produce      json
// @Param        deliveryID   path    string  true  "delivery ID"
// @Success      200 {object} domain.Delivery
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /logistics/deliveries/{deliveryID} [get]
// @Security     BearerToken
func (h *LogisticsHandler) HandleGetDelivery(ctx *gin.Context) {
	deliveryID, err := parseUUIDParam(ctx, "deliveryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	delivery, err := h.svc.GetDelivery(ctx.Request.Context(), deliveryID)
	if err != nil {
		if errors.Is(err, service.ErrDeliveryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("delivery", "ID", deliveryID))

			return
		}

		err = fmt.Errorf("v1.HandleGetDelivery -> h.svc.GetDelivery -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, delivery)
}

// HandleListDeliveries godoc
// @Summary      List deliveries
// @Tags         logistics
// @Produce      json
// @Param        client   query    string  false  "filter by client name"
// @Param        limit    query    int     false  "page size"
// @Param        offset   query    int     false  "page offset"
// @Success      200 {object} []domain.Delivery
// @Failure      500 {object} response.Err
// @Router       /logistics/deliveries [get]
// @Security     BearerToken
func (h *LogisticsHandler) HandleListDeliveries(ctx *gin.Context) {
	clientName := ctx.Query("client")
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	deliveries, err := h.svc.ListDeliveries(ctx.Request.Context(), clientName, limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleListDeliveries -> h.svc.ListDeliveries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, deliveries)
}

// HandleSuggestTruck godoc
// @Summary      Suggest a truck for a load
// @Description  Scores active trucks by capacity utilization; overloaded trucks are excluded.
// @Tags         logistics
// @Produce      json
// @Param        request   body      request.SuggestTruckRequest true "request body"
// @Success      200      {object}   moduleapi.TruckSuggestionResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /logistics/trucks/suggest [post]
// @Security     BearerToken
func (h *LogisticsHandler) HandleSuggestTruck(ctx *gin.Context) {
	var req request.SuggestTruckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	totalWeight, _ := decimal.NewFromString(req.TotalWeightKg)

	resp, err := h.svc.SuggestTruck(ctx.Request.Context(), moduleapi.TruckSuggestionRequest{
		TotalWeightKg: totalWeight,
		TruckType:     req.TruckType,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSuitableTruck):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNoSuitableTruck))
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidQuantity))
		default:
			err = fmt.Errorf("v1.HandleSuggestTruck -> h.svc.SuggestTruck -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, resp)
}
