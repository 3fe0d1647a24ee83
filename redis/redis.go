package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// ActiveSlotsKey is the per-doctor cache key for the patient-facing
// active-slots view.
func ActiveSlotsKey(doctorID string) string {
	return "active-slots:" + doctorID
}

// CacheTTL reads ACTIVE_SLOTS_CACHE_TTL_SECONDS, defaulting to 60 seconds.
func CacheTTL() time.Duration {
	if v := os.Getenv("ACTIVE_SLOTS_CACHE_TTL_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 60 * time.Second
}

// GetActiveSlots returns the cached booking-view payload for a doctor.
// A nil client or any cache error reads as a miss.
func GetActiveSlots(doctorID string) ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	payload, err := Client.Get(Ctx, ActiveSlotsKey(doctorID)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetActiveSlots caches the booking-view payload with the configured TTL.
func SetActiveSlots(doctorID string, payload []byte) {
	if Client == nil {
		return
	}
	Client.Set(Ctx, ActiveSlotsKey(doctorID), payload, CacheTTL())
}

// InvalidateActiveSlots drops the cached view after a mutation. Errors are
// ignored; the next read falls through to the database.
func InvalidateActiveSlots(doctorID string) {
	if Client == nil {
		return
	}
	Client.Del(Ctx, ActiveSlotsKey(doctorID))
}
