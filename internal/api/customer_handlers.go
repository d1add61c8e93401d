package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldloan-backend/internal/middleware"
	"goldloan-backend/internal/models"
	"goldloan-backend/internal/services"
	"goldloan-backend/internal/utils"
)

// CustomerHandlers handles customer endpoints
type CustomerHandlers struct {
	customerService *services.CustomerService
}

// NewCustomerHandlers creates new customer handlers
func NewCustomerHandlers(db *sql.DB) *CustomerHandlers {
	return &CustomerHandlers{
		customerService: services.NewCustomerService(db),
	}
}

// Create handles POST /api/customers
func (h *CustomerHandlers) Create(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if !utils.ValidMobile(req.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid mobile number"})
		return
	}
	if req.Pincode != nil && !utils.ValidPincode(*req.Pincode) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid pincode"})
		return
	}

	customer, err := h.customerService.Create(middleware.ShopID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, customer)
}

// List handles GET /api/customers, with optional ?search=
func (h *CustomerHandlers) List(c *gin.Context) {
	shopID := middleware.ShopID(c)

	var customers []models.Customer
	var err error
	if query := c.Query("search"); query != "" {
		customers, err = h.customerService.Search(shopID, query)
	} else {
		customers, err = h.customerService.List(shopID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, customers)
}

// Get handles GET /api/customers/:id
func (h *CustomerHandlers) Get(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	customer, err := h.customerService.GetByID(middleware.ShopID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, customer)
}

// Update handles PUT /api/customers/:id
func (h *CustomerHandlers) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if req.Mobile != nil && !utils.ValidMobile(*req.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid mobile number"})
		return
	}
	if req.Pincode != nil && !utils.ValidPincode(*req.Pincode) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid pincode"})
		return
	}

	customer, err := h.customerService.Update(middleware.ShopID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, customer)
}

// Delete handles DELETE /api/customers/:id
func (h *CustomerHandlers) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.customerService.Delete(middleware.ShopID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Customer deleted"})
}
