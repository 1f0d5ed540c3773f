// Package session holds the server-side session-of-record. Tokens are
// self-contained JWTs, but the store's copy decides which token is the
// currently valid one per subject.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "user:token:"
	permsKeyPrefix = "user:perms:"
)

// ErrNoSession indicates no session record exists for the subject.
var ErrNoSession = errors.New("session: no record")

// Store persists the current token and cached permission set per subject.
type Store struct {
	client *redis.Client
}

// NewStore constructs a Store backed by the provided Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func tokenKey(userID int64) string {
	return fmt.Sprintf("%s%d", tokenKeyPrefix, userID)
}

func permsKey(userID int64) string {
	return fmt.Sprintf("%s%d", permsKeyPrefix, userID)
}

// Put overwrites the session record for a subject. Both entries are written
// in one pipeline with the same TTL, so the permission cache never outlives
// the token. Overwriting implicitly invalidates any previously issued token.
func (s *Store) Put(ctx context.Context, userID int64, token string, perms []string, ttl time.Duration) error {
	if perms == nil {
		perms = []string{}
	}
	data, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("session: marshal permissions: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tokenKey(userID), token, ttl)
		pipe.Set(ctx, permsKey(userID), data, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: put: %w", err)
	}
	return nil
}

// Token returns the currently valid token for a subject.
func (s *Store) Token(ctx context.Context, userID int64) (string, error) {
	token, err := s.client.Get(ctx, tokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("session: get token: %w", err)
	}
	return token, nil
}

// Permissions returns the cached permission set for a subject.
func (s *Store) Permissions(ctx context.Context, userID int64) ([]string, error) {
	data, err := s.client.Get(ctx, permsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("session: get permissions: %w", err)
	}
	var perms []string
	if err := json.Unmarshal(data, &perms); err != nil {
		return nil, fmt.Errorf("session: decode permissions: %w", err)
	}
	return perms, nil
}

// Delete removes the session record, forcing the subject to log in again.
func (s *Store) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, tokenKey(userID), permsKey(userID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}
