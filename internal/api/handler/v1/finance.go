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

type FinanceService interface {
	CreateAccount(ctx context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error)
	GetAccount(ctx context.Context, id uint) (domain.CustomerAccount, error)
	ListAccounts(ctx context.Context) ([]domain.CustomerAccount, error)
	UpdateAccount(ctx context.Context, account domain.CustomerAccount) (domain.CustomerAccount, error)
	CheckCredit(ctx context.Context, req moduleapi.CreditCheckRequest) (moduleapi.CreditCheckResponse, error)
}

type FinanceHandler struct {
	svc FinanceService
}

func NewFinanceHandler(svc FinanceService) *FinanceHandler {
	return &FinanceHandler{
		svc: svc,
	}
}

// HandleCreateAccount godoc
// @Summary      Create a customer account
// @Tags         finance
// @Produce      json
// @Param        request   body      request.CreateAccountRequest true "request body"
// @Success      201      {object}   domain.CustomerAccount
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /finance/accounts [post]
// @Security     BearerToken
func (h *FinanceHandler) HandleCreateAccount(ctx *gin.Context) {
	var req request.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	creditLimit, _ := decimal.NewFromString(req.CreditLimit)

	account, err := h.svc.CreateAccount(ctx.Request.Context(), domain.CustomerAccount{
		ClientName:  req.ClientName,
		CreditLimit: creditLimit,
	})
	if err != nil {
		if errors.Is(err, service.ErrAccountNameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAccountNameExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateAccount -> h.svc.CreateAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, account)
}

// HandleGetAccount godoc
// @Summary      Get a customer account
// @Tags         finance
// @Produce      json
// @Param        accountID   path    int  true  "account ID"
// @Success      200 {object} domain.CustomerAccount
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /finance/accounts/{accountID} [get]
// @Security     BearerToken
func (h *FinanceHandler) HandleGetAccount(ctx *gin.Context) {
	accountID, err := parseUintParam(ctx, "accountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	account, err := h.svc.GetAccount(ctx.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("customer account", "ID", accountID))

			return
		}

		err = fmt.Errorf("v1.HandleGetAccount -> h.svc.GetAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleListAccounts godoc
// @Summary      List customer accounts
// @Tags         finance
// @Produce      json
// @Success      200 {object} []domain.CustomerAccount
// @Failure      500 {object} response.Err
// @Router       /finance/accounts [get]
// @Security     BearerToken
func (h *FinanceHandler) HandleListAccounts(ctx *gin.Context) {
	accounts, err := h.svc.ListAccounts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAccounts -> h.svc.ListAccounts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, accounts)
}

// HandleUpdateAccount godoc
// @Summary      Update a customer account
// @Tags         finance
// @Produce      json
// @Param        accountID   path    int  true  "account ID"
// @Param        request     body    request.UpdateAccountRequest true "request body"
// @Success      200 {object} domain.CustomerAccount
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /finance/accounts/{accountID} [put]
// @Security     BearerToken
func (h *FinanceHandler) HandleUpdateAccount(ctx *gin.Context) {
	accountID, err := parseUintParam(ctx, "accountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateAccountRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	existing, err := h.svc.GetAccount(ctx.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("customer account", "ID", accountID))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateAccount -> h.svc.GetAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	creditLimit, _ := decimal.NewFromString(req.CreditLimit)
	balance, _ := decimal.NewFromString(req.Balance)

	existing.CreditLimit = creditLimit
	existing.Balance = balance
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	account, err := h.svc.UpdateAccount(ctx.Request.Context(), existing)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateAccount -> h.svc.UpdateAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleCheckCredit godoc
// @Summary      Check customer credit for a charge
// @Tags         finance
// @Produce      json
// @Param        request   body      request.CreditCheckRequest true "request body"
// @Success      200      {object}   moduleapi.CreditCheckResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /finance/credit-check [post]
// @Security     BearerToken
func (h *FinanceHandler) HandleCheckCredit(ctx *gin.Context) {
	var req request.CreditCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	amount, _ := decimal.NewFromString(req.Amount)

	resp, err := h.svc.CheckCredit(ctx.Request.Context(), moduleapi.CreditCheckRequest{
		ClientName: req.ClientName,
		Amount:     amount,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckCredit -> h.svc.CheckCredit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, resp)
}
