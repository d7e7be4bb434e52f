package api

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/metrics"},
	}))

	r.Use(gin.Recovery())
	r.Use(handler.metrics.Middleware())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	r.GET("/feeds/posts.xml", handler.GetFeed)

	r.GET("/health", handler.GetHealth)
	r.GET("/metrics", gin.WrapH(handler.metrics.Handler()))

	r.GET("/api/facets", handler.GetFacets)
	r.GET("/api/posts", handler.GetPosts)

	sessions := r.Group("/api/sessions")
	if apiAccessKey != "" {
		sessions.Use(authMiddleware(apiAccessKey))
		slog.Info("Session endpoints require authentication")
	}
	{
		sessions.POST("", handler.APICreateSession)
		sessions.GET("/:id", handler.APIGetSession)
		sessions.DELETE("/:id", handler.APIDeleteSession)
		sessions.PUT("/:id/industry", handler.APISetIndustry)
		sessions.PUT("/:id/type", handler.APISetType)
		sessions.PUT("/:id/search", handler.APISetSearch)
		sessions.POST("/:id/tags/toggle", handler.APIToggleTag)
		sessions.DELETE("/:id/tags", handler.APIClearTags)
		sessions.POST("/:id/reset", handler.APIResetSession)
	}

	r.GET("/", func(c *gin.Context) {
		auth := ""
		if apiAccessKey != "" {
			auth = " (requires X-API-Key header)"
		}

		c.JSON(http.StatusOK, gin.H{
			"service":     "Microbrands",
			"version":     handler.version,
			"description": "Creative inspiration gallery of Indian micro brand posts with faceted filtering",
			"endpoints": map[string]string{
				"facets":   "/api/facets",
				"posts":    "/api/posts?industry=<industry>&type=<post|carousel>&search=<text>&tag=<tag>",
				"feed":     "/feeds/posts.xml (same filters as /api/posts)",
				"sessions": "/api/sessions" + auth,
				"health":   "/health",
				"metrics":  "/metrics",
			},
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiAccessKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
