package credstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultRedisKey is the key the token is stored under.
const DefaultRedisKey = "chupacabra:credential"

const redisOpTimeout = 2 * time.Second

// Redis writes the token through to a Redis key. Reads are served from the
// snapshot loaded at construction and kept current by Save and Delete.
type Redis struct {
	snapshot
	client redis.UniversalClient
	key    string
}

// NewRedis wraps client. The current value of key is loaded once; a Redis
// failure at this point leaves the store empty.
func NewRedis(client redis.UniversalClient, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	r := &Redis{client: client, key: key}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	token, err := client.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
	case err != nil:
		log.Warn().Err(err).Str("key", key).Msg("unable to load token from redis")
	case token != "":
		r.set(token)
	}
	return r
}

func (r *Redis) Save(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.set(token)
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := r.client.Set(ctx, r.key, token, 0).Err(); err != nil {
		log.Warn().Err(err).Str("key", r.key).Msg("unable to persist token to redis")
	}
}

func (r *Redis) Delete() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clear()
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		log.Warn().Err(err).Str("key", r.key).Msg("unable to delete token from redis")
	}
}
