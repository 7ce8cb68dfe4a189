package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mini_ledger/internal/core/ports/services"
	"github.com/SscSPs/mini_ledger/internal/dto"
	"github.com/SscSPs/mini_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts and transfers.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{ledgerService: ls}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/transfer", h.transferFunds)
		accounts.GET("/:id/balance", h.getBalance)
		accounts.GET("/:id/transactions", h.listAccountTransactions)
	}
}

// createAccount godoc
// @Summary Open an account
// @Description Opens an account for an existing customer with an initial deposit. The body must contain exactly customer and deposit.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Customer and initial deposit"
// @Success 200 {object} dto.SuccessResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or customer does not exist"
// @Failure 422 {object} dto.ErrorResponse "Store fault"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := bindStrictJSON(c, dto.CreateAccountFields, &req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		respondErrorMessage(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, errorMessages{
			invalid:        msgInvalidRequest,
			notFound:       "Customer does not exist.",
			notFoundStatus: http.StatusBadRequest,
		})
		return
	}

	respondOK(c, "Account created successfully", dto.ToAccountResponse(account))
}

// transferFunds godoc
// @Summary Transfer funds
// @Description Moves funds between two accounts and returns the debit-side transaction. The body must contain exactly origin, destination and amount.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferFundsRequest true "Transfer details"
// @Success 200 {object} dto.SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request, missing account or insufficient funds"
// @Failure 422 {object} dto.ErrorResponse "Store fault"
// @Router /accounts/transfer [post]
func (h *accountHandler) transferFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferFundsRequest
	if err := bindStrictJSON(c, dto.TransferFundsFields, &req); err != nil {
		logger.Warn("Failed to bind JSON for TransferFunds", slog.String("error", err.Error()))
		respondErrorMessage(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	txn, err := h.ledgerService.TransferFunds(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, errorMessages{
			invalid:        msgInvalidRequest,
			notFound:       "Either one or both the accounts do not exist!",
			notFoundStatus: http.StatusBadRequest,
		})
		return
	}

	respondOK(c, "Funds transfer completed successfully", dto.ToTransactionResponse(txn))
}

// getBalance godoc
// @Summary Get account balance
// @Description Returns the current balance of an account as a number
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.SuccessResponse{data=number}
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID"
// @Failure 404 {object} dto.ErrorResponse "Account does not exist"
// @Failure 422 {object} dto.ErrorResponse "Store fault"
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	balance, err := h.ledgerService.GetBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, errorMessages{
			invalid:        "Invalid account ID",
			notFound:       "Account does not exist.",
			notFoundStatus: http.StatusNotFound,
		})
		return
	}

	respondOK(c, "Successfully fetched account balance", dto.NewMoney(balance))
}

// listAccountTransactions godoc
// @Summary List account transactions
// @Description Returns the account's transactions in the order they were recorded
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID"
// @Failure 404 {object} dto.ErrorResponse "Account does not exist"
// @Failure 422 {object} dto.ErrorResponse "Store fault"
// @Router /accounts/{id}/transactions [get]
func (h *accountHandler) listAccountTransactions(c *gin.Context) {
	txns, err := h.ledgerService.GetAccountTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, errorMessages{
			invalid:        "Invalid account ID",
			notFound:       "Account does not exist.",
			notFoundStatus: http.StatusNotFound,
		})
		return
	}

	respondOK(c, "Successfully fetched account transactions", dto.ToListTransactionResponse(txns))
}
