package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// sessionKey is the durable-storage key for the session record. The record
// carries no schema version; Load treats anything it cannot decode as an
// empty session rather than an error.
const sessionKey = "auth-session"

// SessionPersistence implements ports.SessionPersistence on Redis. Writes
// are last-write-wins with no transactional discipline: there is a single
// writer context (the active session store) and no cross-process guarantee.
type SessionPersistence struct {
	client *redis.Client
}

// NewSessionPersistence creates a SessionPersistence wrapping the given
// Redis client.
func NewSessionPersistence(client *redis.Client) *SessionPersistence {
	return &SessionPersistence{client: client}
}

// sessionRecord is the persisted shape: user, token, and the authenticated
// flag. The loading flag is deliberately absent.
type sessionRecord struct {
	User            *domain.User `json:"user,omitempty"`
	Token           string       `json:"token,omitempty"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

// Save serializes the session. No TTL: the record lives until Clear is
// called or the caller invalidates it.
func (p *SessionPersistence) Save(ctx context.Context, s domain.Session) error {
	raw, err := json.Marshal(sessionRecord{
		User:            s.User,
		Token:           s.Token,
		IsAuthenticated: s.IsAuthenticated,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := p.client.Set(ctx, sessionKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load rehydrates the last saved session. A missing or undecodable record
// yields the empty session, not an error.
func (p *SessionPersistence) Load(ctx context.Context) (domain.Session, error) {
	raw, err := p.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Session{}, nil
	}
	return domain.Session{
		User:            rec.User,
		Token:           rec.Token,
		IsAuthenticated: rec.IsAuthenticated,
	}, nil
}

// Clear removes the persisted record. Clearing an absent record is a no-op.
func (p *SessionPersistence) Clear(ctx context.Context) error {
	if err := p.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
