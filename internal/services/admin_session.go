package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// AdminSessionDuration is 7 days
	AdminSessionDuration = 7 * 24 * time.Hour
	// AdminSessionKeyPrefix is the Redis key prefix for admin sessions
	AdminSessionKeyPrefix = "admin_session:"
	// AdminToSessionKeyPrefix is the Redis key prefix for admin->session mapping
	AdminToSessionKeyPrefix = "admin_to_session:"
)

// SessionStore keeps admin session tokens in Redis. An admin holds at most
// one live session; logging in again replaces it.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Create starts a session for usuario and returns its token.
func (s *SessionStore) Create(ctx context.Context, usuario string) (string, error) {
	// Invalidate any existing session for this admin (so 7-day timer resets)
	if err := s.InvalidateAdmin(ctx, usuario); err != nil {
		return "", err
	}

	token, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	sessionToken := token.String()

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, AdminSessionKeyPrefix+sessionToken, usuario, AdminSessionDuration)
		pipe.Set(ctx, AdminToSessionKeyPrefix+usuario, sessionToken, AdminSessionDuration)
		return nil
	})
	if err != nil {
		return "", err
	}
	return sessionToken, nil
}

// Validate returns the usuario owning sessionToken. ok is false for empty,
// unknown and expired tokens; err is reserved for Redis failures.
func (s *SessionStore) Validate(ctx context.Context, sessionToken string) (usuario string, ok bool, err error) {
	if sessionToken == "" {
		return "", false, nil
	}

	usuario, err = s.rdb.Get(ctx, AdminSessionKeyPrefix+sessionToken).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return usuario, true, nil
}

// Invalidate removes a session from Redis.
func (s *SessionStore) Invalidate(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	sessionKey := AdminSessionKeyPrefix + sessionToken

	// Get admin before deleting
	usuario, err := s.rdb.Get(ctx, sessionKey).Result()
	if err == nil && usuario != "" {
		// only drop the mapping if it still points at this token
		current, _ := s.rdb.Get(ctx, AdminToSessionKeyPrefix+usuario).Result()
		if current == sessionToken {
			_ = s.rdb.Del(ctx, AdminToSessionKeyPrefix+usuario).Err()
		}
	}

	return s.rdb.Del(ctx, sessionKey).Err()
}

// InvalidateAdmin ends whatever session usuario currently holds.
func (s *SessionStore) InvalidateAdmin(ctx context.Context, usuario string) error {
	adminToSessionKey := AdminToSessionKeyPrefix + usuario

	sessionToken, err := s.rdb.Get(ctx, adminToSessionKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if sessionToken != "" {
		if err := s.rdb.Del(ctx, AdminSessionKeyPrefix+sessionToken).Err(); err != nil {
			return err
		}
	}

	return s.rdb.Del(ctx, adminToSessionKey).Err()
}
