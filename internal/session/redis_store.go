package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in redis with a TTL equal to the inactivity
// timeout.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore connects to redisURL and pings it.
func NewRedisStore(redisURL string, timeout time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, timeout), nil
}

func NewRedisStoreWithClient(client *redis.Client, timeout time.Duration) *RedisStore {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &RedisStore{
		client:  client,
		prefix:  "session:",
		timeout: timeout,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Timeout() time.Duration {
	return s.timeout
}

// Create assigns a fresh session id to p and stores it.
func (s *RedisStore) Create(ctx context.Context, p Principal) (Principal, error) {
	now := time.Now().UTC()
	p.SessionID = uuid.NewString()
	p.CreatedAt = now
	p.LastActiveAt = now

	if err := s.save(ctx, p); err != nil {
		return Principal{}, err
	}
	return p, nil
}

// Touch loads a session and restarts its inactivity window.
func (s *RedisStore) Touch(ctx context.Context, id string) (Principal, error) {
	if id == "" {
		return Principal{}, ErrSessionExpired
	}
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return Principal{}, ErrSessionExpired
	}
	if err != nil {
		return Principal{}, fmt.Errorf("lookup session: %w", err)
	}

	var p Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Principal{}, fmt.Errorf("unmarshal session: %w", err)
	}

	p.LastActiveAt = time.Now().UTC()
	data, err := json.Marshal(p)
	if err != nil {
		return Principal{}, fmt.Errorf("marshal session: %w", err)
	}
	// XX: a session revoked since the GET must stay revoked.
	ok, err := s.client.SetXX(ctx, s.key(id), data, s.timeout).Result()
	if err != nil {
		return Principal{}, fmt.Errorf("refresh session: %w", err)
	}
	if !ok {
		return Principal{}, ErrSessionExpired
	}
	return p, nil
}

func (s *RedisStore) Revoke(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *RedisStore) save(ctx context.Context, p Principal) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(p.SessionID), data, s.timeout).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
