package notify

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const channelPrefix = "coachtracker:notifications:"

func Channel(coachID string) string {
	return channelPrefix + coachID
}

// RedisNotifier publishes notifications as JSON on the coach's channel.
type RedisNotifier struct {
	redisClient *redis.Client
}

func NewRedisNotifier(redisClient *redis.Client) *RedisNotifier {
	return &RedisNotifier{
		redisClient: redisClient,
	}
}

func (r *RedisNotifier) Notify(ctx context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Errorf("redis notifier, marshal notification: %s", err)
		return
	}

	if err := r.redisClient.Publish(ctx, Channel(n.CoachID), payload).Err(); err != nil {
		log.Errorf("redis notifier, publish to %s: %s", Channel(n.CoachID), err)
	}
}
