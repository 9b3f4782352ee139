package tokenstore

import (
	"context"

	"github.com/BruksfildServices01/fieldservice-availability/internal/config"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
)

type Store interface {
	Load(ctx context.Context) (*scheduling.Token, error)
	Save(ctx context.Context, token *scheduling.Token) error
	Clear(ctx context.Context) error
}

// Open builds the store selected by TOKEN_STORE. The returned close
// function releases any connection and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	maxAge := cfg.Salesforce.TokenMaxAge

	if cfg.TokenStore == "redis" {
		client, err := Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return NewRedis(client, cfg.RedisPrefix, maxAge), client.Close, nil
	}

	return NewMemory(maxAge), func() error { return nil }, nil
}
