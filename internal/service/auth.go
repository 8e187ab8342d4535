package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/mapmemo/mapmemo/internal/domain"
	"github.com/mapmemo/mapmemo/internal/usecase"
)

var tracer = otel.Tracer("auth")

// AuthService resolves bearer tokens to requester identities. A resolved
// token is cached briefly so repeat requests skip the session lookup.
type AuthService struct {
	tokens   *TokenService
	sessions usecase.SessionStore
	cache    *gocache.Cache
}

func NewAuthService(tokens *TokenService, sessions usecase.SessionStore) *AuthService {
	return &AuthService{
		tokens:   tokens,
		sessions: sessions,
		cache:    gocache.New(1*time.Minute, 5*time.Minute),
	}
}

func (s *AuthService) AuthBearer(ctx context.Context, token string) (*domain.Requester, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.AuthBearer")
	defer span.End()

	if cached, ok := s.cache.Get(token); ok {
		requester := cached.(domain.Requester)
		return &requester, nil
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		span.RecordError(errors.Wrap(err, "jwt validation failed"))
		return nil, domain.ErrUnauthenticated
	}

	userID, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		span.RecordError(errors.Wrap(err, "session lookup failed"))
		return nil, domain.ErrUnauthenticated
	}

	if userID != claims.Subject {
		span.RecordError(errors.New("session subject mismatch"))
		return nil, domain.ErrUnauthenticated
	}

	requester := domain.Requester{
		ID:     claims.Subject,
		Name:   claims.Name,
		Avatar: claims.Avatar,
		JTI:    claims.ID,
	}

	s.cache.Set(token, requester, gocache.DefaultExpiration)

	return &requester, nil
}

// Revoke drops a token from the short-lived cache, for logout.
func (s *AuthService) Revoke(token string) {
	s.cache.Delete(token)
}
