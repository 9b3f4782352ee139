package tokenstore

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
)

const tokenKey = "salesforce:token"

// Memory keeps the token in process memory.
type Memory struct {
	cache  *ttlcache.Cache[string, scheduling.Token]
	maxAge time.Duration
}

// NewMemory returns an in-process store. A positive maxAge drops the token
// after that long even if the CRM would still accept it; zero keeps it
// until a probe fails.
func NewMemory(maxAge time.Duration) *Memory {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, scheduling.Token](),
	)

	return &Memory{cache: cache, maxAge: maxAge}
}

func (m *Memory) Load(_ context.Context) (*scheduling.Token, error) {
	item := m.cache.Get(tokenKey)
	if item == nil {
		return nil, nil
	}

	tok := item.Value()
	return &tok, nil
}

func (m *Memory) Save(_ context.Context, token *scheduling.Token) error {
	ttl := ttlcache.NoTTL
	if m.maxAge > 0 {
		ttl = m.maxAge
	}

	m.cache.Set(tokenKey, *token, ttl)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.cache.Delete(tokenKey)
	return nil
}
