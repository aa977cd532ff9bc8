package handler

import (
	"context"
	"net/http"

	"gamereviews/internal/http-api/middleware"
	"gamereviews/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig wires every handler into one engine.
type RouterConfig struct {
	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Engagement *EngagementHandler
	Admin      *AdminHandler
	Tokens     middleware.TokenValidator

	CORSOrigins []string
	// AllowAnyOrigin is set in development.
	AllowAnyOrigin bool
	Metrics        bool
	// Ping backs /check-conn; nil always reports healthy.
	Ping func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if cfg.AllowAnyOrigin || len(cfg.CORSOrigins) == 0 {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsConfig))

	if cfg.Metrics {
		r.Use(metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/check-conn", func(c *gin.Context) {
		if cfg.Ping != nil {
			ctx, cancel := withTimeout(c, requestTimeout)
			defer cancel()
			if err := cfg.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")
	{
		if cfg.Auth != nil {
			cfg.Auth.RegisterRoutes(api.Group("/auth"))
		}
		if cfg.Catalog != nil {
			cfg.Catalog.RegisterRoutes(api)
		}

		protected := api.Group("", middleware.AuthMiddleware(cfg.Tokens))
		if cfg.Engagement != nil {
			cfg.Engagement.RegisterRoutes(protected)
		}
		if cfg.Admin != nil {
			cfg.Admin.RegisterRoutes(protected.Group("/admin", middleware.RequireSuperuser()))
		}
	}

	return r
}
