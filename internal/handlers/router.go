package handlers

import (
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, templatePath string) *gin.Engine {
	r := gin.Default()

	if templatePath != "" {
		r.LoadHTMLGlob(templatePath)
	}

	r.Use(h.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logs := r.Group("/latest-logs")
	if rateLimiter != nil {
		logs.Use(h.RateLimitMiddleware(rateLimiter))
	}
	logs.GET("", h.ShowLatestLogs)

	// Everything else is classified: referral traffic is redirected,
	// the rest is proxied to the static origin.
	r.NoRoute(h.HandleAccess)

	return r
}
