package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldloan-backend/internal/middleware"
	"goldloan-backend/internal/models"
	"goldloan-backend/internal/services"
)

// ExportHandlers handles CSV export endpoints
type ExportHandlers struct {
	exportService *services.ExportService
}

// NewExportHandlers creates new export handlers
func NewExportHandlers(db *sql.DB) *ExportHandlers {
	return &ExportHandlers{
		exportService: services.NewExportService(db),
	}
}

// Loans handles GET /api/exports/loans
func (h *ExportHandlers) Loans(c *gin.Context) {
	status := models.LoanStatus(c.Query("status"))
	if status != "" && status != models.LoanStatusActive && status != models.LoanStatusClosed {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status filter"})
		return
	}

	data, err := h.exportService.LoansCSV(middleware.ShopID(c), status)
	if err != nil {
		respondError(c, err)
		return
	}
	sendCSV(c, "loans.csv", data)
}

// Payments handles GET /api/exports/payments with optional ?from= and ?to=
func (h *ExportHandlers) Payments(c *gin.Context) {
	data, err := h.exportService.PaymentsCSV(middleware.ShopID(c), queryDate(c, "from"), queryDate(c, "to"))
	if err != nil {
		respondError(c, err)
		return
	}
	sendCSV(c, "payments.csv", data)
}

// Customers handles GET /api/exports/customers
func (h *ExportHandlers) Customers(c *gin.Context) {
	data, err := h.exportService.CustomersCSV(middleware.ShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sendCSV(c, "customers.csv", data)
}

func sendCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
