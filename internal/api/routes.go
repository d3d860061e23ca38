package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/poolsim/internal/api/handlers"
	"github.com/playmatatu/poolsim/internal/config"
	"github.com/playmatatu/poolsim/internal/game"
	"github.com/playmatatu/poolsim/internal/middleware"
	"github.com/playmatatu/poolsim/internal/redis"
	"github.com/playmatatu/poolsim/internal/ws"
	goredis "github.com/redis/go-redis/v9"
)

// SetupRoutes configures all API routes. rdb may be nil, in which case shots
// are neither cached nor shared with other instances.
func SetupRoutes(router *gin.Engine, eng *game.Engine, rdb *goredis.Client, hub *ws.Hub, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	deps := handlers.ShotDeps{
		Cache:     redis.NewShotCache(rdb, time.Duration(cfg.ShotCacheTTLMinutes)*time.Minute),
		Publisher: redis.NewPublisher(rdb),
		Hub:       hub,
	}
	auth := middleware.APIKeyAuth(cfg)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(rdb))

		v1.GET("/table", handlers.GetTable(eng))
		v1.POST("/table/svg", auth, handlers.RenderTable(eng))
		v1.POST("/segment", auth, handlers.RunSegment(eng))
		v1.POST("/shoot", auth, handlers.Shoot(eng, deps, cfg))

		tables := v1.Group("/tables")
		tables.Use(middleware.WebSocketCORSCheck(cfg))
		{
			tables.GET("/:channel/ws", ws.HandleWebSocket(hub))
		}
	}
}
