package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alkime/podcasts/internal/config"
	"github.com/alkime/podcasts/internal/routes"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	assetsPath      = "/assets"
)

// setupSecurityMiddleware configures and applies security middleware to the router
func setupSecurityMiddleware(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	// Configure HSTS for production only
	stsSeconds := int64(0)
	if cfg.Env == config.EnvProduction {
		stsSeconds = int64(cfg.HSTSMaxAge)
	}

	// Create and apply security middleware
	secureMiddleware := secure.New(secure.Config{
		STSSeconds:            stsSeconds,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: config.BuildCSP(cfg.CSPMode, cfg.BaseOrigin),
	})
	router.Use(secureMiddleware)

	logger.Debug("Configured security middleware",
		"hsts_enabled", cfg.Env == config.EnvProduction,
		"csp_mode", cfg.CSPMode,
	)
}

// setupStaticAssets serves files from PublicDir under {base}/assets.
func setupStaticAssets(router *gin.Engine, cfg *config.Config, history *routes.History, logger *slog.Logger) {
	prefix := history.Href(assetsPath)
	router.Use(static.Serve(prefix, static.LocalFile(cfg.PublicDir, false)))

	logger.Debug("Serving static assets", "prefix", prefix, "dir", cfg.PublicDir)
}

func isAssetPath(history *routes.History, p string) bool {
	prefix := history.Href(assetsPath)
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// requestID tags every request with an id, reusing the caller's when present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one structured line per request.
func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// corsMiddleware applies rs/cors to a route group. Preflight requests are
// answered by cors itself and go no further.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	//nolint:exhaustruct // Defaults are fine for the remaining options
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", requestIDHeader},
	})

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)

		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.Abort()
		}
	}
}
