package document

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trace-microservice/internal/config"
	"go.uber.org/zap"
)

// Store wraps the Redis connection backing the trace document store.
type Store struct {
	client *redis.Client
	logger *zap.Logger
}

func NewStore(cfg *config.RedisConfig, logger *zap.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Document store connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	return &Store{
		client: client,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	s.logger.Info("Closing document store connection")
	return s.client.Close()
}

func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Client() *redis.Client {
	return s.client
}
