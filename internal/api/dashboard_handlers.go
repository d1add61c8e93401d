package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldloan-backend/internal/middleware"
	"goldloan-backend/internal/services"
)

// DashboardHandlers handles dashboard endpoints
type DashboardHandlers struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandlers creates new dashboard handlers
func NewDashboardHandlers(db *sql.DB) *DashboardHandlers {
	return &DashboardHandlers{
		dashboardService: services.NewDashboardService(db),
	}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandlers) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(middleware.ShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// RecentLoans handles GET /api/dashboard/recent-loans
func (h *DashboardHandlers) RecentLoans(c *gin.Context) {
	loans, err := h.dashboardService.RecentLoans(middleware.ShopID(c), queryInt(c, "limit", 5))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, loans)
}

// RecentPayments handles GET /api/dashboard/recent-payments
func (h *DashboardHandlers) RecentPayments(c *gin.Context) {
	payments, err := h.dashboardService.RecentPayments(middleware.ShopID(c), queryInt(c, "limit", 5))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payments)
}
