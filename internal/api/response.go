package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldloan-backend/internal/ledger"
	"goldloan-backend/internal/services"
)

// respondOK writes the standard success envelope
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError maps service errors to HTTP status codes and writes the
// standard error envelope
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrLoanNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrShopNotFound):
		status = http.StatusNotFound

	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrLoanClosed),
		errors.Is(err, services.ErrOutstandingBalance),
		errors.Is(err, services.ErrCustomerHasLoans),
		errors.Is(err, services.ErrConcurrentUpdate),
		errors.Is(err, services.ErrNumberExhausted):
		status = http.StatusConflict

	case errors.Is(err, services.ErrNoFields),
		errors.Is(err, services.ErrCustomerInactive),
		errors.Is(err, ledger.ErrNonPositiveAmount),
		errors.Is(err, ledger.ErrAmountExceedsBalance),
		errors.Is(err, ledger.ErrPrincipalExceedsValue),
		errors.Is(err, ledger.ErrInvalidNetWeight):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// respondBadRequest writes a 400 with the binding error message
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
