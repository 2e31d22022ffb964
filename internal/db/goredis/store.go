// Package goredis implements db.Store on go-redis. It accepts a single address,
// a cluster seed list or a sentinel set through redis.UniversalClient.
package goredis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kailas-cloud/cohesion/internal/db"
)

var _ db.Store = (*Store)(nil)

// Config holds connection parameters.
type Config struct {
	Addrs      []string
	Password   string
	DB         int
	MasterName string
	PoolSize   int
}

// Store implements db.Store via go-redis.
type Store struct {
	client redis.UniversalClient
}

// NewStore creates the client. No connection is made until the first command.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("addrs is required")
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:      cfg.Addrs,
		Password:   cfg.Password,
		DB:         cfg.DB,
		MasterName: cfg.MasterName,
		PoolSize:   cfg.PoolSize,
	})
	return &Store{client: client}, nil
}

func newStoreWithClient(c redis.UniversalClient) *Store {
	return &Store{client: c}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	_ = s.client.Close()
}

// WaitForReady polls Ping until the server answers or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, getError(err)
	}
	return data, nil
}

func getError(err error) error {
	if errors.Is(err, redis.Nil) {
		return db.ErrKeyNotFound
	}
	return &db.Error{Op: db.OpGet, Err: err}
}

// SetWithTTL stores a value. A non-positive ttl stores without expiry.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del removes a key. Missing keys are not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
