package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck reports service status. When a Redis client is configured it
// is pinged, and an unreachable Redis marks the service degraded since shots
// are then neither cached nor relayed to other instances.
func HealthCheck(rdb *goredis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, status, redisStatus := http.StatusOK, "ok", "disabled"
		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				code, status, redisStatus = http.StatusServiceUnavailable, "degraded", "unreachable"
			} else {
				redisStatus = "ok"
			}
		}

		c.JSON(code, gin.H{
			"status":  status,
			"service": "poolsim-api",
			"version": version,
			"redis":   redisStatus,
			"uptime":  time.Since(startTime).Round(time.Second).String(),
		})
	}
}
