package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured
func NewServer(handler *Handler, adminToken string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	})

	r.Use(gin.Recovery())

	// Permissive CORS on every response; preflight is answered here
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, adminToken)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, adminToken string) {
	// Public feed endpoints
	for _, path := range []string{"/feed.xml", "/rss.xml", "/feed"} {
		r.GET(path, handler.GetRSS)
	}
	for _, path := range []string{"/feed.json", "/json"} {
		r.GET(path, handler.GetJSONFeed)
	}

	// Public read endpoints
	r.GET("/settings", handler.GetSettings)
	r.GET("/items", handler.ListItems)
	r.GET("/health", handler.GetHealth)
	r.GET("/", handler.GetDocs)

	// Admin endpoints
	auth := authMiddleware(adminToken)
	r.POST("/settings", auth, handler.UpdateSettings)
	r.POST("/items", auth, handler.CreateItem)
	r.PUT("/items/:id", auth, handler.UpdateItem)
	r.DELETE("/items/:id", auth, handler.DeleteItem)
	r.POST("/broadcast", auth, handler.Broadcast)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})
}

// authMiddleware guards mutating endpoints with a static bearer token
func authMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || provided != adminToken {
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Next()
	}
}
