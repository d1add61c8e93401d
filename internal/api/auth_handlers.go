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

// AuthHandlers handles authentication endpoints
type AuthHandlers struct {
	shopService *services.ShopService
	authService *services.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(db *sql.DB, authService *services.AuthService) *AuthHandlers {
	return &AuthHandlers{
		shopService: services.NewShopService(db),
		authService: authService,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if !utils.ValidMobile(req.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid mobile number"})
		return
	}

	shop, err := h.shopService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(shop)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, models.AuthResponse{Token: token, Shop: shop})
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	shop, err := h.shopService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(shop)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, models.AuthResponse{Token: token, Shop: shop})
}

// Logout handles POST /api/auth/logout by blacklisting the current token
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token != "" {
		h.authService.BlacklistToken(token)
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Refresh handles POST /api/auth/refresh, trading a valid token for a
// fresh one
func (h *AuthHandlers) Refresh(c *gin.Context) {
	token, err := h.authService.RefreshToken(c.GetString("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		return
	}
	respondOK(c, http.StatusOK, gin.H{"token": token})
}

// Me handles GET /api/auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	shop, err := h.shopService.GetByID(middleware.ShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, shop)
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.shopService.ChangePassword(middleware.ShopID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Password changed"})
}
