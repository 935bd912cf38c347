package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	Name   string
	Client *redis.Client
}

var (
	mu             sync.RWMutex
	redisInstances = make(map[string]*Redis)
)

func (r *Redis) Init(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// RegisterRedis creates a client for opts under name. Registering an existing name is a
// no-op.
func RegisterRedis(ctx context.Context, name string, opts *redis.Options) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := redisInstances[name]; ok {
		return nil
	}

	r := &Redis{
		Name:   name,
		Client: redis.NewClient(opts),
	}
	if err := r.Init(ctx); err != nil {
		r.Client.Close()
		return fmt.Errorf("register redis %s: %w", name, err)
	}
	redisInstances[name] = r

	return nil
}

func GetRedis(name string) (*Redis, error) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := redisInstances[name]
	if !ok {
		return nil, fmt.Errorf("Redis not found, name:%s", name)
	}

	return r, nil
}

func RemoveRedis(name string) {
	mu.Lock()
	defer mu.Unlock()
	if r, ok := redisInstances[name]; ok {
		r.Client.Close()
		delete(redisInstances, name)
	}
}
