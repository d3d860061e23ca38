package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/playmatatu/poolsim/internal/redis"
	goredis "github.com/redis/go-redis/v9"
)

// StartShotEventSubscriber relays shots published by any instance on the
// shot_events channel to the local subscribers of the shot's table channel.
func StartShotEventSubscriber(ctx context.Context, rdb *goredis.Client, h *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; shot event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, redis.ShotEventsChannel)
	ch := pubsub.Channel()
	go func() {
		<-ctx.Done()
		pubsub.Close()
	}()
	go func() {
		log.Printf("[WS] %s subscriber started", redis.ShotEventsChannel)
		for msg := range ch {
			RelayShotEvent(h, []byte(msg.Payload))
		}
	}()
}

// RelayShotEvent decodes one published shot envelope and broadcasts it.
func RelayShotEvent(h *Hub, payload []byte) {
	var ev redis.ShotEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Printf("[WS] invalid event payload: %v", err)
		return
	}
	if ev.Type != "shot" || !ValidChannel(ev.Channel) {
		log.Printf("[WS] unknown event type=%s channel=%q", ev.Type, ev.Channel)
		return
	}

	log.Printf("[WS] relaying shot to channel %s (room_size=%d)", ev.Channel, h.RoomSize(ev.Channel))
	h.PublishRaw(ev.Channel, payload)
}
