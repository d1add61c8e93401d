package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"goldloan-backend/config"
	"goldloan-backend/database"
	"goldloan-backend/internal/api"
	"goldloan-backend/internal/middleware"
	"goldloan-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using system environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// CORS
	router.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := ""
		if cfg.AllowAllOrigins {
			allowed = "*"
		} else {
			for _, o := range cfg.AllowedOrigins {
				if o == origin {
					allowed = origin
					break
				}
			}
		}
		if allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "Content-Disposition")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.Use(middleware.SecurityMiddleware(&middleware.SecurityConfig{
		MaxRequestSize:    cfg.MaxRequestSize,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   time.Duration(cfg.RateLimitWindow) * time.Second,
	}))

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	eventService := services.NewEventService(authService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	authHandlers := api.NewAuthHandlers(db, authService)
	shopHandlers := api.NewShopHandlers(db)
	customerHandlers := api.NewCustomerHandlers(db)
	loanHandlers := api.NewLoanHandlers(db, eventService)
	paymentHandlers := api.NewPaymentHandlers(db, eventService)
	dashboardHandlers := api.NewDashboardHandlers(db)
	exportHandlers := api.NewExportHandlers(db)
	pdfHandlers := api.NewPDFHandlers(db)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		auth.Use(middleware.AuthRateLimitMiddleware(cfg.AuthRateLimit))
		{
			auth.POST("/register", authHandlers.Register)
			auth.POST("/login", authHandlers.Login)
			auth.POST("/logout", authMiddleware.AuthRequired(), authHandlers.Logout)
			auth.POST("/refresh", authMiddleware.AuthRequired(), authHandlers.Refresh)
			auth.GET("/me", authMiddleware.AuthRequired(), authHandlers.Me)
			auth.POST("/change-password", authMiddleware.AuthRequired(), authHandlers.ChangePassword)
		}

		protected := apiGroup.Group("")
		protected.Use(authMiddleware.AuthRequired())
		{
			protected.GET("/shop", shopHandlers.GetProfile)
			protected.PUT("/shop", shopHandlers.UpdateProfile)
			protected.GET("/shop/audit-logs", shopHandlers.AuditLogs)

			protected.POST("/customers", customerHandlers.Create)
			protected.GET("/customers", customerHandlers.List)
			protected.GET("/customers/:id", customerHandlers.Get)
			protected.PUT("/customers/:id", customerHandlers.Update)
			protected.DELETE("/customers/:id", customerHandlers.Delete)

			protected.POST("/loans", loanHandlers.Create)
			protected.GET("/loans", loanHandlers.List)
			protected.GET("/loans/overdue", loanHandlers.Overdue)
			protected.GET("/loans/:id", loanHandlers.Get)
			protected.POST("/loans/:id/close", loanHandlers.Close)
			protected.GET("/loans/:id/payments", paymentHandlers.ListByLoan)
			protected.GET("/loans/:id/document", pdfHandlers.LoanDocument)

			protected.POST("/payments", paymentHandlers.Create)
			protected.GET("/payments", paymentHandlers.List)
			protected.GET("/payments/:id", paymentHandlers.Get)
			protected.GET("/payments/:id/receipt", pdfHandlers.PaymentReceipt)

			protected.GET("/dashboard/stats", dashboardHandlers.Stats)
			protected.GET("/dashboard/recent-loans", dashboardHandlers.RecentLoans)
			protected.GET("/dashboard/recent-payments", dashboardHandlers.RecentPayments)

			protected.GET("/exports/loans", exportHandlers.Loans)
			protected.GET("/exports/payments", exportHandlers.Payments)
			protected.GET("/exports/customers", exportHandlers.Customers)
		}

		// Token comes via query parameter on the websocket upgrade
		apiGroup.GET("/ws", eventService.HandleWebSocket)
	}

	// Periodically prune the token blacklist
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			authService.CleanupExpiredTokens()
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
}
