package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Initialize Redis connection from environment.
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"), // Empty if no password
		DB:       0,
	})
}

// CacheSnapshot stores a last-known-good JSON snapshot under
// "snapshot:<farmerID>:<kind>". Snapshots back the dashboard when the
// upstream storage service is unreachable.
func CacheSnapshot(ctx context.Context, farmerID, kind string, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println("snapshot marshal error:", err)
		return
	}
	if err := Conn.Set(ctx, snapshotKey(farmerID, kind), data, ttl).Err(); err != nil {
		log.Println("snapshot set error:", err)
	}
}

// LoadSnapshot reads a cached snapshot into out. Returns false when no
// snapshot exists or it cannot be decoded.
func LoadSnapshot(ctx context.Context, farmerID, kind string, out interface{}) bool {
	data, err := Conn.Get(ctx, snapshotKey(farmerID, kind)).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		log.Println("snapshot unmarshal error:", err)
		return false
	}
	return true
}

func snapshotKey(farmerID, kind string) string {
	return "snapshot:" + farmerID + ":" + kind
}
