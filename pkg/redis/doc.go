// Package redis connects to the Redis server used as a shared MX answer cache.
//
// Connect parses a redis:// URL, retries the initial PING according to Config
// and returns a ready *redis.Client from github.com/redis/go-redis/v9.
// Healthcheck adapts any redis.UniversalClient into a probe function.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := mxresolver.NewRedisStore(client, cfg.KeyPrefix)
package redis
