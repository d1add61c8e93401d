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

// ShopHandlers handles shop profile endpoints
type ShopHandlers struct {
	shopService  *services.ShopService
	auditService *services.AuditService
}

// NewShopHandlers creates new shop handlers
func NewShopHandlers(db *sql.DB) *ShopHandlers {
	return &ShopHandlers{
		shopService:  services.NewShopService(db),
		auditService: services.NewAuditService(db),
	}
}

// GetProfile handles GET /api/shop
func (h *ShopHandlers) GetProfile(c *gin.Context) {
	shop, err := h.shopService.GetByID(middleware.ShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, shop)
}

// UpdateProfile handles PUT /api/shop
func (h *ShopHandlers) UpdateProfile(c *gin.Context) {
	var req models.UpdateShopRequest
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

	shop, err := h.shopService.Update(middleware.ShopID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, shop)
}

// AuditLogs handles GET /api/shop/audit-logs
func (h *ShopHandlers) AuditLogs(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	logs, err := h.auditService.List(middleware.ShopID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, logs)
}
