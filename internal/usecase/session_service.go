package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
)

var _ ports.SessionService = (*SessionService)(nil)

// DefaultSessionTTL — время жизни привязки токена к пользователю.
const DefaultSessionTTL = 59 * time.Minute

// SessionService — токен сессии → имя пользователя, хранится в кэше под "session:<token>".
type SessionService struct {
	cache ports.Cache
	ttl   time.Duration
	log   ports.Logger
}

func NewSessionService(cache ports.Cache, ttl time.Duration, log ports.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{cache: cache, ttl: ttl, log: log}
}

// Bind — false, если токен уже привязан (существующая привязка не перезаписывается).
func (s *SessionService) Bind(ctx context.Context, token, username string) (bool, error) {
	if token == "" {
		return false, domain.InvalidArgument("token", token)
	}
	if username == "" {
		return false, domain.InvalidArgument("username", username)
	}
	ok, err := s.cache.SetIfAbsent(ctx, domain.KindSession.CacheKey(token), []byte(username), s.ttl)
	if err != nil {
		return false, fmt.Errorf("bind session: %w", err)
	}
	if !ok {
		s.log.Warnf(ctx, "session token already bound user=%s", username)
	}
	return ok, nil
}

// Resolve — ErrUnauthorized, если токен неизвестен или истёк.
func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	raw, found, err := s.cache.Get(ctx, domain.KindSession.CacheKey(token))
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	if !found || len(raw) == 0 {
		return "", fmt.Errorf("%w: unknown session", domain.ErrUnauthorized)
	}
	return string(raw), nil
}
