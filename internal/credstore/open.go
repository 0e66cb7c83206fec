package credstore

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config selects and parameterizes a backend.
type Config struct {
	Backend   string `json:"backend" yaml:"backend" toml:"backend" validate:"omitempty,oneof=memory file redis"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty" toml:"path"`
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty" toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisKey  string `json:"redis_key,omitempty" yaml:"redis_key,omitempty" toml:"redis_key"`
}

// Open builds the store described by cfg. An empty backend means file.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case "", BackendFile:
		path := cfg.Path
		if path == "" {
			var err error
			path, err = DefaultCredentialsPath()
			if err != nil {
				return nil, err
			}
		}
		return NewFile(path), nil
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis backend requires redis_addr")
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return NewRedis(client, cfg.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown credentials backend %q", cfg.Backend)
	}
}
