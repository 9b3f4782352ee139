package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
)

// MaxTokenAttempts bounds requests to the token endpoint per acquisition.
const MaxTokenAttempts = 3

// Token returns a usable bearer token. A stored token is reused only after
// a successful probe against its identity URL; otherwise a new one is
// requested with a JWT-bearer grant.
//
// Concurrent callers share one probe/acquisition. The shared call is
// detached from any single caller's cancellation and is bounded by the
// HTTP client timeout instead; a cancelled caller simply stops waiting.
func (s *Session) Token(ctx context.Context) (*scheduling.Token, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan("token", func() (any, error) {
		return s.token(shared)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*scheduling.Token), nil
	}
}

func (s *Session) token(ctx context.Context) (*scheduling.Token, error) {
	cached, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("token store load failed", zap.Error(err))
		cached = nil
	}

	if cached != nil {
		s.log.Debug("found stored token")

		err := s.probe(ctx, cached)
		if err == nil {
			s.log.Debug("stored salesforce token valid")
			return cached, nil
		}
		s.log.Info("token invalid, fetching new token", zap.Error(err))

		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn("token store clear failed", zap.Error(err))
		}
		s.audit.Dispatch(audit.Event{
			RequestID: audit.RequestIDFrom(ctx),
			Action:    audit.ActionTokenInvalidated,
			Entity:    "token",
			EntityID:  cached.ID,
		})
	}

	return s.acquire(ctx)
}

// probe is a cheap authenticated call used only as a liveness check.
func (s *Session) probe(ctx context.Context, token *scheduling.Token) error {
	if token.ID == "" {
		return fmt.Errorf("token has no identity url")
	}

	req, err := newRequest(ctx, http.MethodPost, token.ID, nil)
	if err != nil {
		return err
	}

	_, err = s.do(req, token)
	return err
}

func (s *Session) acquire(ctx context.Context) (*scheduling.Token, error) {
	var lastErr error

	for attempt := 1; attempt <= MaxTokenAttempts; attempt++ {
		// signed per attempt so every assertion carries a fresh expiry
		form, err := s.grantForm()
		if err != nil {
			return nil, err
		}

		token, err := s.requestToken(ctx, form.Encode())
		if err == nil {
			if err := s.store.Save(ctx, token); err != nil {
				s.log.Warn("token store save failed", zap.Error(err))
			}
			s.log.Info("salesforce token acquired",
				zap.Int("attempt", attempt),
				zap.String("instance_url", token.InstanceURL),
			)
			s.audit.Dispatch(audit.Event{
				RequestID: audit.RequestIDFrom(ctx),
				Action:    audit.ActionTokenAcquired,
				Entity:    "token",
				EntityID:  token.ID,
				Metadata:  map[string]any{"attempt": attempt},
			})
			return token, nil
		}

		lastErr = err
		s.log.Error("token request failed", zap.Int("attempt", attempt), zap.Error(err))
	}

	s.audit.Dispatch(audit.Event{
		RequestID: audit.RequestIDFrom(ctx),
		Action:    audit.ActionTokenExhausted,
		Entity:    "token",
		Metadata:  map[string]any{"attempts": MaxTokenAttempts},
	})

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrTokenExhausted, MaxTokenAttempts, lastErr)
}

func (s *Session) requestToken(ctx context.Context, form string) (*scheduling.Token, error) {
	req, err := newRequest(ctx, http.MethodPost, s.cfg.TokenURL(), strings.NewReader(form))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := s.do(req, nil)
	if err != nil {
		return nil, err
	}

	var token scheduling.Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ErrEmptyToken
	}

	return &token, nil
}
