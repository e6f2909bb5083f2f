package middleware

import (
	"log/slog"
	"slices"

	"workshop-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware opens the API to the booking UI. A "*" origin allows any
// origin and is meant for local development only.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
		slog.Warn("CORS allows every origin")
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
		slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)
	}
	return cors.New(corsCfg)
}
