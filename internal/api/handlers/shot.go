package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/poolsim/internal/config"
	"github.com/playmatatu/poolsim/internal/game"
	"github.com/playmatatu/poolsim/internal/redis"
	"github.com/playmatatu/poolsim/internal/ws"
	"golang.org/x/sync/singleflight"
)

// shotFlight collapses concurrent identical shot requests into one run.
var shotFlight singleflight.Group

type shotResult struct {
	id   string
	body []byte
}

// ShootRequest is the body of POST /shoot.
type ShootRequest struct {
	Table    *game.TableState `json:"table"`
	Velocity game.Coordinate  `json:"velocity"`
	Frames   bool             `json:"frames"`
	Channel  string           `json:"channel,omitempty"`
}

// cacheKey covers every field that influences the simulation result.
func (r ShootRequest) cacheKey(maxSegments int) string {
	body, _ := json.Marshal(struct {
		Table       *game.TableState `json:"table"`
		Velocity    game.Coordinate  `json:"velocity"`
		Frames      bool             `json:"frames"`
		MaxSegments int              `json:"max_segments"`
	}{r.Table, r.Velocity, r.Frames, maxSegments})
	return redis.ShotKey(body)
}

// ShotDeps groups what the shoot handler needs besides the engine.
type ShotDeps struct {
	Cache     *redis.ShotCache
	Publisher *redis.Publisher
	Hub       *ws.Hub
}

// Shoot strikes the cue ball of the posted table and returns the full shot.
// Results are cached by request and, when a channel is named, published to
// its websocket subscribers.
func Shoot(eng *game.Engine, deps ShotDeps, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ShootRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shot: " + err.Error()})
			return
		}
		if req.Table == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "table required"})
			return
		}
		if req.Channel != "" && !ws.ValidChannel(req.Channel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
			return
		}

		ctx := c.Request.Context()
		key := req.cacheKey(cfg.MaxSegmentsPerShot)

		body, hit := deps.Cache.Get(ctx, key)
		if !hit {
			v, err, shared := shotFlight.Do(key, func() (interface{}, error) {
				t, err := eng.TableFromState(*req.Table)
				if err != nil {
					return nil, err
				}
				shot, err := eng.Shoot(t, req.Velocity, game.ShotOptions{
					Frames:      req.Frames,
					MaxSegments: cfg.MaxSegmentsPerShot,
				})
				if err != nil {
					return nil, err
				}
				out, err := json.Marshal(shot)
				if err != nil {
					return nil, err
				}
				// The run is shared; one caller going away must not drop the entry.
				deps.Cache.Set(context.WithoutCancel(ctx), key, out)
				return shotResult{id: shot.ID, body: out}, nil
			})
			if err != nil {
				abortWithError(c, err)
				return
			}
			res := v.(shotResult)
			body = res.body
			c.Header("X-Shot-ID", res.id)
			if shared {
				c.Header("X-Shot-Cache", "shared")
			} else {
				c.Header("X-Shot-Cache", "miss")
			}
		} else {
			c.Header("X-Shot-Cache", "hit")
		}

		if req.Channel != "" {
			publishShot(c, deps, req.Channel, body)
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

// publishShot sends the shot through Redis when available so every instance
// relays it; otherwise it goes straight to the local hub.
func publishShot(c *gin.Context, deps ShotDeps, channel string, shot []byte) {
	envelope, err := json.Marshal(redis.ShotEvent{Type: "shot", Channel: channel, Shot: shot})
	if err != nil {
		log.Printf("[API] encode shot event: %v", err)
		return
	}

	if deps.Publisher.Enabled() {
		err := deps.Publisher.PublishShot(c.Request.Context(), envelope)
		if err == nil {
			return
		}
		log.Printf("[API] publish to redis failed, delivering locally: %v", err)
	}
	if deps.Hub != nil {
		deps.Hub.PublishRaw(channel, envelope)
	}
}
