package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/mini_ledger/internal/core/ports/services"
	"github.com/SscSPs/mini_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	rg.GET("/transactions/:id", h.getTransaction)
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Returns a transaction with its origin and destination accounts expanded
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.TransactionDetailsResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid transaction ID"
// @Failure 404 {object} dto.ErrorResponse "Transaction does not exist"
// @Failure 422 {object} dto.ErrorResponse "Store fault"
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	details, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, errorMessages{
			invalid:        "Invalid transaction ID",
			notFound:       "Transaction does not exist.",
			notFoundStatus: http.StatusNotFound,
		})
		return
	}

	respondOK(c, "Successfully fetched transaction data", dto.ToTransactionDetailsResponse(details))
}
