package salesforce

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/config"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
)

// TokenStore holds the current bearer token. Load returns (nil, nil)
// when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (*scheduling.Token, error)
	Save(ctx context.Context, token *scheduling.Token) error
	Clear(ctx context.Context) error
}

type Options struct {
	Config     config.Salesforce
	Store      TokenStore
	HTTPClient *http.Client
	Location   *time.Location
	Logger     *zap.Logger
	Audit      audit.Recorder
	Now        func() time.Time
}

// Session is the CRM client. It owns the token lifecycle and issues the
// scheduling queries; it is safe for concurrent use.
type Session struct {
	cfg   config.Salesforce
	store TokenStore
	http  *http.Client
	loc   *time.Location
	log   *zap.Logger
	audit audit.Recorder
	now   func() time.Time

	group singleflight.Group
}

var _ scheduling.Gateway = (*Session)(nil)

func NewSession(opts Options) *Session {
	s := &Session{
		cfg:   opts.Config,
		store: opts.Store,
		http:  opts.HTTPClient,
		loc:   opts.Location,
		log:   opts.Logger,
		audit: opts.Audit,
		now:   opts.Now,
	}

	if s.http == nil {
		timeout := opts.Config.HTTPTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		s.http = &http.Client{Timeout: timeout}
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.audit == nil {
		s.audit = audit.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}

	return s
}
