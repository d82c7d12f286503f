package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockBusy means another booking for the same organizer held the lock
// for the whole wait period.
var ErrLockBusy = errors.New("organizer lock busy")

// OrganizerLocker serializes bookings per organizer.
type OrganizerLocker interface {
	Acquire(ctx context.Context, organizer string) (release func(), err error)
}

// releaseScript deletes the key only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is an OrganizerLocker backed by SET NX PX.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl, wait: wait, retry: 100 * time.Millisecond}
}

func lockKey(organizer string) string {
	return "booking:lock:" + strings.ToLower(strings.TrimSpace(organizer))
}

func (l *RedisLocker) Acquire(ctx context.Context, organizer string) (func(), error) {
	key := lockKey(organizer)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
			}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, ErrLockBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
