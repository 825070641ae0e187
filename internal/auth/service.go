package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/banchee-erp/banchee-erp/internal/shared"
)

const sessionKeyPrefix = "session:"

// Service wraps authentication business rules. Sessions are opaque
// bearer tokens stored in Redis with a sliding TTL.
type Service struct {
	repo     Repository
	sessions *redis.Client
	ttl      time.Duration
}

// NewService constructs a new Service.
func NewService(repo Repository, sessions *redis.Client, ttl time.Duration) *Service {
	return &Service{repo: repo, sessions: sessions, ttl: ttl}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// CreateToken mints a session token for the user.
func (s *Service) CreateToken(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.sessions.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store session: %w", err)
	}
	return token, nil
}

// Validate resolves a token to a user ID and refreshes its TTL.
func (s *Service) Validate(ctx context.Context, token string) (int64, error) {
	val, err := s.sessions.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return 0, shared.ErrInvalidCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("auth: load session: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, shared.ErrInvalidCredentials
	}
	s.sessions.Expire(ctx, sessionKeyPrefix+token, s.ttl)
	return userID, nil
}

// Revoke deletes a session token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.sessions.Del(ctx, sessionKeyPrefix+token).Err()
}
