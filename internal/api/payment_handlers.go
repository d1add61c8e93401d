package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldloan-backend/internal/middleware"
	"goldloan-backend/internal/models"
	"goldloan-backend/internal/services"
)

// PaymentHandlers handles payment endpoints
type PaymentHandlers struct {
	paymentService *services.PaymentService
	eventService   *services.EventService
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(db *sql.DB, eventService *services.EventService) *PaymentHandlers {
	return &PaymentHandlers{
		paymentService: services.NewPaymentService(db),
		eventService:   eventService,
	}
}

// Create handles POST /api/payments
func (h *PaymentHandlers) Create(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	shopID := middleware.ShopID(c)
	payment, err := h.paymentService.Create(shopID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.eventService.Publish(shopID, services.EventPaymentRecorded, payment)
	respondOK(c, http.StatusCreated, payment)
}

// List handles GET /api/payments with optional ?from= and ?to= ISO dates
func (h *PaymentHandlers) List(c *gin.Context) {
	payments, err := h.paymentService.List(middleware.ShopID(c), queryDate(c, "from"), queryDate(c, "to"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payments)
}

// Get handles GET /api/payments/:id
func (h *PaymentHandlers) Get(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	payment, err := h.paymentService.GetByID(middleware.ShopID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payment)
}

// ListByLoan handles GET /api/loans/:id/payments
func (h *PaymentHandlers) ListByLoan(c *gin.Context) {
	loanID, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	payments, err := h.paymentService.ListByLoan(middleware.ShopID(c), loanID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payments)
}
