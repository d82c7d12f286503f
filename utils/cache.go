package utils

import (
	"context"
	"log"
	"time"

	"cardioconsult/config"

	"github.com/go-redis/redis/v8"
)

// LockClient backs the per-organizer booking lock.
var LockClient *redis.Client

// InitLockClient connects the Redis database used for booking locks.
func InitLockClient() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := LockClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (Lock): %v", err)
	}
}

// GetLockClient returns the Redis client for booking locks.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockClient()
	}
	return LockClient
}
