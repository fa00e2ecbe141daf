package main

import (
	"context"
	"net/http"
	"time"

	"nestview-web/internal/middleware"
	"nestview-web/pkg/cache"
	"nestview-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.setupMetricsRoute()
	a.setupAPIRoutes()
}

// setupMetricsRoute exposes the Prometheus metrics endpoint
func (a *App) setupMetricsRoute() {
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cache.RedisClient.Ping(ctx).Result(); err != nil {
			logger.GlobalLogger.Errorf("Redis ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Redis unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		// Account and session
		api.POST("/auth/login", a.AccountHandler.Login)
		api.POST("/auth/logout", a.AccountHandler.Logout)
		api.POST("/auth/register", a.AccountHandler.Register)

		// Password recovery flow
		recovery := api.Group("/recovery")
		{
			recovery.POST("/start", a.RecoveryHandler.Start)
			recovery.GET("/state", a.RecoveryHandler.State)
			recovery.POST("/key", a.RecoveryHandler.Key)
			recovery.POST("/paste", a.RecoveryHandler.Paste)
			recovery.POST("/otp", a.RecoveryHandler.SubmitOTP)
			recovery.POST("/resend", a.RecoveryHandler.Resend)
			recovery.POST("/reset", a.RecoveryHandler.Reset)
		}

		// Email verification flow
		verify := api.Group("/verify")
		{
			verify.POST("/start", a.VerifyHandler.Start)
			verify.GET("/state", a.VerifyHandler.State)
			verify.POST("/key", a.VerifyHandler.Key)
			verify.POST("/paste", a.VerifyHandler.Paste)
			verify.POST("/submit", a.VerifyHandler.Submit)
			verify.POST("/resend", a.VerifyHandler.Resend)
		}

		// Listings search page
		listings := api.Group("/listings")
		{
			listings.GET("/mount", a.ListingsHandler.Mount)
			listings.POST("/filters", a.ListingsHandler.UpdateFilters)
			listings.POST("/search-input", a.ListingsHandler.SearchInput)
			listings.POST("/search", a.ListingsHandler.Search)
			listings.POST("/page", a.ListingsHandler.Page)
			listings.GET("/:id", a.ListingsHandler.Detail)
		}

		// Public forms
		api.POST("/contact", a.AccountHandler.Contact)
		api.POST("/newsletter/subscribe", a.AccountHandler.Subscribe)

		// Signed-in routes
		protected := api.Group("")
		protected.Use(middleware.RequireSession())
		{
			protected.GET("/auth/me", a.AccountHandler.Me)
			protected.PUT("/users/profile", a.AccountHandler.UpdateProfile)

			protected.GET("/wishlist", a.WishlistHandler.List)
			protected.POST("/wishlist/toggle", a.WishlistHandler.Toggle)

			protected.POST("/properties/images", a.PropertiesHandler.StageImages)
			protected.GET("/properties/images", a.PropertiesHandler.Staged)
			protected.DELETE("/properties/images", a.PropertiesHandler.UnstageImage)
			protected.DELETE("/properties/images/all", a.PropertiesHandler.ClearStaged)
			protected.POST("/properties", a.PropertiesHandler.Submit)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireSession(), middleware.RequireAdmin())
		{
			admin.GET("/properties/pending", a.AdminHandler.Pending)
			admin.POST("/properties/:id/approve", a.AdminHandler.Approve)
			admin.POST("/properties/:id/reject", a.AdminHandler.Reject)
			admin.POST("/newsletter", a.AdminHandler.SendNewsletter)
		}
	}
}
