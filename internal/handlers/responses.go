package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/mini_ledger/internal/apperrors"
	"github.com/SscSPs/mini_ledger/internal/dto"
	"github.com/SscSPs/mini_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "Invalid request. Please check the request params."

// errorMessages describes how one endpoint words its client errors.
type errorMessages struct {
	invalid        string
	notFound       string
	notFoundStatus int
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: message, Data: data})
}

func respondErrorMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

// respondError classifies a service error. Validation, missing references and
// insufficient funds are client errors; anything else is a store fault (422).
func respondError(c *gin.Context, err error, msgs errorMessages) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Rejected invalid request", slog.String("error", err.Error()))
		respondErrorMessage(c, http.StatusBadRequest, msgs.invalid)
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Rejected transfer for insufficient funds", slog.String("error", err.Error()))
		respondErrorMessage(c, http.StatusBadRequest, "Origin account does not have sufficient funds for the transfer")
	case errors.Is(err, apperrors.ErrNotFound) && msgs.notFound != "":
		logger.Warn("Referenced record not found", slog.String("error", err.Error()))
		respondErrorMessage(c, msgs.notFoundStatus, msgs.notFound)
	default:
		logger.Error("Store fault while handling request", slog.String("error", err.Error()))
		respondErrorMessage(c, http.StatusUnprocessableEntity, err.Error())
	}
}
