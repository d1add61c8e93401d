package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldloan-backend/internal/middleware"
	"goldloan-backend/internal/services"
)

// PDFHandlers handles printable document endpoints
type PDFHandlers struct {
	pdfService *services.PDFService
}

// NewPDFHandlers creates new PDF handlers
func NewPDFHandlers(db *sql.DB) *PDFHandlers {
	return &PDFHandlers{
		pdfService: services.NewPDFService(db),
	}
}

// LoanDocument handles GET /api/loans/:id/document
func (h *PDFHandlers) LoanDocument(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.pdfService.LoanDocument(middleware.ShopID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, "loan-document.pdf", data)
}

// PaymentReceipt handles GET /api/payments/:id/receipt
func (h *PDFHandlers) PaymentReceipt(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.pdfService.PaymentReceipt(middleware.ShopID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, "payment-receipt.pdf", data)
}

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
