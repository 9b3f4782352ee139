package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
)

// Redis shares one token between every replica pointed at the same
// server and prefix.
type Redis struct {
	client *redis.Client
	key    string
	maxAge time.Duration
}

func NewRedis(client *redis.Client, prefix string, maxAge time.Duration) *Redis {
	return &Redis{
		client: client,
		key:    fmt.Sprintf("%s:%s", prefix, tokenKey),
		maxAge: maxAge,
	}
}

// Connect opens a client and fails fast if the server is unreachable.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (r *Redis) Load(ctx context.Context) (*scheduling.Token, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get token: %w", err)
	}

	var tok scheduling.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("decode stored token: %w", err)
	}
	return &tok, nil
}

func (r *Redis) Save(ctx context.Context, token *scheduling.Token) error {
	b, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	// zero expiration keeps the key until Clear
	if err := r.client.Set(ctx, r.key, b, r.maxAge).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del token: %w", err)
	}
	return nil
}
