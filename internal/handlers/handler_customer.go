package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mini_ledger/internal/core/ports/services"
	"github.com/SscSPs/mini_ledger/internal/dto"
	"github.com/SscSPs/mini_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
	}
}

// listCustomers godoc
// @Summary List customers
// @Description Returns every customer sorted by name
// @Tags customers
// @Produce  json
// @Success 200 {object} dto.SuccessResponse{data=[]dto.CustomerResponse}
// @Failure 422 {object} dto.ErrorResponse "Store fault"
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err, errorMessages{invalid: msgInvalidRequest})
		return
	}

	logger.Info("Customers listed", slog.Int("count", len(customers)))
	respondOK(c, "Successfully fetched all customers", dto.ToListCustomerResponse(customers))
}

// getCustomer godoc
// @Summary Get a customer
// @Description Returns a customer with its accounts expanded
// @Tags customers
// @Produce  json
// @Param   id path string true "Customer ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.CustomerDetailsResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer does not exist"
// @Failure 422 {object} dto.ErrorResponse "Store fault"
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	customerID := c.Param("id")

	details, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, errorMessages{
			invalid:        "Invalid customer ID",
			notFound:       "Customer does not exist.",
			notFoundStatus: http.StatusNotFound,
		})
		return
	}

	respondOK(c, "Successfully fetched customer data", dto.ToCustomerDetailsResponse(details))
}
