package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldloan-backend/internal/ledger"
	"goldloan-backend/internal/middleware"
	"goldloan-backend/internal/models"
	"goldloan-backend/internal/services"
)

// LoanHandlers handles loan endpoints
type LoanHandlers struct {
	loanService  *services.LoanService
	eventService *services.EventService
}

// NewLoanHandlers creates new loan handlers
func NewLoanHandlers(db *sql.DB, eventService *services.EventService) *LoanHandlers {
	return &LoanHandlers{
		loanService:  services.NewLoanService(db),
		eventService: eventService,
	}
}

// Create handles POST /api/loans
func (h *LoanHandlers) Create(c *gin.Context) {
	var req models.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	shopID := middleware.ShopID(c)
	loan, err := h.loanService.Create(shopID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.eventService.Publish(shopID, services.EventLoanCreated, loan)
	respondOK(c, http.StatusCreated, loan)
}

// List handles GET /api/loans with optional ?status= and ?customerId=
func (h *LoanHandlers) List(c *gin.Context) {
	status := models.LoanStatus(c.Query("status"))
	if status != "" && status != models.LoanStatusActive && status != models.LoanStatusClosed {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status filter"})
		return
	}

	loans, err := h.loanService.List(middleware.ShopID(c), status, queryInt64(c, "customerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, loans)
}

// Overdue handles GET /api/loans/overdue
func (h *LoanHandlers) Overdue(c *gin.Context) {
	loans, err := h.loanService.ListOverdue(middleware.ShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, loans)
}

// Get handles GET /api/loans/:id, including the interest accrued to date
func (h *LoanHandlers) Get(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	loan, err := h.loanService.GetByID(middleware.ShopID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	accrued := h.loanService.AccruedInterest(loan)
	respondOK(c, http.StatusOK, gin.H{
		"loan":                 loan,
		"accruedInterestPaise": accrued,
		"accruedInterest":      ledger.PaiseToRupees(accrued),
	})
}

// Close handles POST /api/loans/:id/close
func (h *LoanHandlers) Close(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	shopID := middleware.ShopID(c)
	loan, err := h.loanService.Close(shopID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.eventService.Publish(shopID, services.EventLoanClosed, loan)
	respondOK(c, http.StatusOK, loan)
}
