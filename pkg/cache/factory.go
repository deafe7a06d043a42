package cache

import "fmt"

// NewCache creates a cache instance for the configured backend
func NewCache(config Config) (Cache, error) {
	switch config.Type {
	case "", "local":
		return NewLocalCache(config.Local), nil
	case "gocache":
		return NewGoCache(config.Local), nil
	case "redis":
		return NewRedisCache(config.Redis)
	default:
		return nil, fmt.Errorf("unknown cache type: %s", config.Type)
	}
}
