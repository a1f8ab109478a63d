package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/charts"
	"readiness-backend/internal/insights"
	"readiness-backend/internal/insights/anthropic"
	"readiness-backend/internal/reports"
	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/shared/server/middleware"
	"readiness-backend/internal/shared/server/respond"
	"readiness-backend/internal/store"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimits()),
	)

	// Dependencies
	var repStore reports.Store
	if cfg.DatabaseURL != "" {
		dbConn, err := store.Connect(context.Background(), cfg.DatabaseURL, store.DefaultOptions())
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := store.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		if dbConn != nil {
			repStore = store.NewPG(dbConn)
		}
	}
	if repStore == nil {
		repStore = store.NewMemory()
	}

	renderer, err := charts.NewRenderer()
	if err != nil {
		return nil, err
	}

	var live insights.Synthesizer
	if cfg.AnthropicAPIKey != "" {
		client, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.SynthModel, time.Duration(cfg.SynthTimeoutSeconds)*time.Second)
		if err != nil {
			log.Printf("narrative synthesis disabled: %v", err)
		} else {
			live = client
		}
	}

	svc := reports.NewService(repStore, renderer, insights.NewClient(live))
	handler := reports.NewHandler(svc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	handler.RegisterRoutes(api)

	return r, nil
}

// Report generation renders charts and calls the synthesis API, so it gets a
// tighter budget than the rest of the surface.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if strings.Contains(c.FullPath(), "/reports/") {
				return "REPORTS"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 5, Burst: 10},
			"REPORTS": {Rate: 1, Burst: 3},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
