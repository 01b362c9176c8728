package server

import (
	"log/slog"
	"net/http"

	"github.com/alkime/podcasts/internal/config"
	"github.com/alkime/podcasts/internal/podcast"
	"github.com/alkime/podcasts/internal/routes"
	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	router  *gin.Engine
	client  *podcast.Client
	history *routes.History
	views   map[routes.View]gin.HandlerFunc
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, client *podcast.Client) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router; access logging goes through slog instead of gin's logger
	router := gin.New()
	router.Use(gin.Recovery())

	// Configure proxy trust for production (Fly.io)
	if cfg.Env == config.EnvProduction {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}

	server := &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		client:  client,
		history: routes.NewHistory(cfg.BasePath),
	}

	server.views = map[routes.View]gin.HandlerFunc{
		routes.PodcastView:       server.handlePodcastView,
		routes.PodcastDetailView: server.handlePodcastDetailView,
	}

	// Setup middleware and routes
	router.Use(requestID(), accessLog(logger))
	setupSecurityMiddleware(router, cfg, logger)
	setupStaticAssets(router, cfg, server.history, logger)
	setupTemplates(router)
	server.setupRoutes()

	return server
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port, "base_path", s.history.Base())
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	base := s.router.Group(s.history.Base())

	// Page routes straight from the route table
	for _, route := range routes.Table() {
		if route.IsRedirect() {
			target := s.history.Href(route.Redirect)
			base.GET(route.Path, func(c *gin.Context) {
				c.Redirect(http.StatusFound, target)
			})
			continue
		}

		view, ok := s.views[route.View]
		if !ok {
			s.logger.Warn("No handler for view", "view", route.View, "path", route.Path)
			continue
		}
		base.GET(route.Path, view)
	}

	// The generate form posts back to its own page
	base.POST(routes.PodcastPath, s.handlePodcastSubmit)

	// JSON API used by scripts and other hosts
	api := base.Group("/api", corsMiddleware(s.config.AllowedOrigins))
	{
		api.POST("/podcasts", s.handleGenerate)
		api.GET("/podcasts/:file/download", s.handleDownload)
		api.OPTIONS("/*any", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	// Anything else lands on the default view
	s.router.NoRoute(s.handleNoRoute)
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "podcasts",
		"backend": s.client.BaseOrigin(),
	})
}

// handleNoRoute redirects unknown locations to the default view. Missing
// static assets stay a plain 404.
func (s *Server) handleNoRoute(c *gin.Context) {
	if isAssetPath(s.history, c.Request.URL.Path) {
		c.Status(http.StatusNotFound)
		return
	}

	m := s.history.Resolve(c.Request.URL.Path)
	s.logger.Debug("Unknown location, redirecting",
		"path", c.Request.URL.Path,
		"redirected_from", m.RedirectedFrom,
		"matched", m.Matched,
		"to", m.Route.Path,
	)
	c.Redirect(http.StatusFound, s.history.Href(m.Route.Path))
}
