package routes

import (
	"encoding/json"

	"mmry/internal/cache"
	"mmry/internal/handlers"
	"mmry/internal/metrics"
	"mmry/internal/middleware"
	"mmry/internal/models"
	"mmry/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services holds the long-lived objects the routes are bound to.
type Services struct {
	Entries  *cache.Cache[json.RawMessage]
	Users    *cache.Cache[models.UserResponse]
	UserTTL  string
	Hub      *realtime.Hub
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// NewServices builds the entry cache and the user lookup cache, wires their
// events to a websocket hub and registers their statistics for scraping.
func NewServices(logger *zap.Logger, userTTL string) *Services {
	hub := realtime.NewHub()
	entries := cache.New[json.RawMessage](cache.Options{
		Logger:  logger.Named("entries"),
		OnEvent: hub.Publisher("entries"),
	})
	users := cache.New[models.UserResponse](cache.Options{
		Logger:  logger.Named("users"),
		OnEvent: hub.Publisher("users"),
	})

	collector := metrics.NewCollector("mmry", map[string]metrics.StatsSource{
		"entries": entries,
		"users":   users,
	})

	return &Services{
		Entries:  entries,
		Users:    users,
		UserTTL:  userTTL,
		Hub:      hub,
		Logger:   logger,
		Registry: metrics.NewRegistry(collector),
	}
}

// Close cancels every pending expiry in both caches.
func (s *Services) Close() {
	s.Entries.ClearAll()
	s.Users.ClearAll()
}

func SetupRoutes(svc *Services) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"entries": svc.Entries.Len(),
		})
	})

	ginRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(svc.Registry, promhttp.HandlerOpts{})))

	cacheHandler := &handlers.CacheHandler{Cache: svc.Entries, Logger: svc.Logger}
	userHandler := &handlers.UserHandler{Users: svc.Users, TTL: svc.UserTTL}
	statsHandler := &handlers.StatsHandler{Caches: map[string]handlers.StatsSource{
		"entries": svc.Entries,
		"users":   svc.Users,
	}}

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Cache endpoints
		protectedRoutes.GET("/cache", cacheHandler.GetEntries)
		protectedRoutes.DELETE("/cache", cacheHandler.ClearEntries)
		protectedRoutes.GET("/cache/:key", cacheHandler.GetEntry)
		protectedRoutes.PUT("/cache/:key", cacheHandler.PutEntry)
		protectedRoutes.DELETE("/cache/:key", cacheHandler.DeleteEntry)
		// Statistics
		protectedRoutes.GET("/stats", statsHandler.GetStats)
		protectedRoutes.POST("/stats/reset", statsHandler.ResetStats)
		// Users endpoints
		protectedRoutes.GET("/users", userHandler.GetAllUsers)
		protectedRoutes.GET("/users/:id", userHandler.GetUserByID)
		// Cache event stream
		protectedRoutes.GET("/ws", handlers.WebSocketHandler(svc.Hub, svc.Logger))
	}

	return ginRouter
}
