package progress

import (
	"strings"

	"github.com/csheth/chronicle/internal/streak"
)

// Open selects a store from a location string: a redis:// or rediss:// URL
// selects redis, "memory" keeps state in process, anything else is a file path.
func Open(location, redisPrefix string) Store {
	location = strings.TrimSpace(location)
	switch {
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedisStore(DialRedis(location), redisPrefix)
	case location == "memory":
		return NewMemoryStore(streak.State{})
	default:
		return NewFileStore(location)
	}
}
