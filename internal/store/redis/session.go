package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abodsh/edufiles/internal/domain"
)

// SaveSession records the identity for a token. The value is the user
// record itself, kept apart from the catalog document so logout never
// touches catalog data.
func (s *Store) SaveSession(ctx context.Context, token string, u *domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}
	if err := s.client.Set(ctx, SessionKey(token), data, s.opts.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession returns the identity for a token, or (nil, nil) when the
// token is unknown or expired.
func (s *Store) GetSession(ctx context.Context, token string) (*domain.User, error) {
	data, err := s.client.Get(ctx, SessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
	}
	return &u, nil
}

// DeleteSession clears the identity slot for a token.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, SessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
