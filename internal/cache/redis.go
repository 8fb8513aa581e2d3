package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeenTTL — сколько помним обработанный payment id. Это оптимизация
// пропускной способности: upsert в базе и так идемпотентен.
const SeenTTL = 10 * time.Minute

// Redis wraps a go-redis client used to short-circuit duplicate webhook
// deliveries.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
}

// Config defines connection parameters for Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New returns a Redis client, or nil when no address is configured —
// дедупликация тогда просто не используется.
func New(cfg Config, logger *slog.Logger) *Redis {
	if cfg.Addr == "" {
		return nil
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		logger: logger.With("component", "redis"),
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Seen reports whether the id was already processed.
// При недоступном Redis считаем id новым: корректность держит база.
func (r *Redis) Seen(ctx context.Context, id string) bool {
	n, err := r.client.Exists(ctx, "yk:seen:"+id).Result()
	if err != nil {
		r.logger.Warn("seen-id cache unavailable", "error", err)
		return false
	}
	return n > 0
}

// MarkSeen records the id after it was processed successfully. Неудачную
// обработку не помечаем: повтор провайдера должен пройти заново.
func (r *Redis) MarkSeen(ctx context.Context, id string) {
	if err := r.client.Set(ctx, "yk:seen:"+id, 1, SeenTTL).Err(); err != nil {
		r.logger.Warn("seen-id cache unavailable", "error", err)
	}
}

// Close releases Redis resources.
func (r *Redis) Close() error {
	return r.client.Close()
}
