package ports

import (
	"context"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// SessionPersistence is the explicit save/load boundary for the session
// record, so the storage mechanism (Redis, encrypted cookie, keychain) is
// swappable without touching session logic.
//
// Load returns the empty session, not an error, when no record exists or
// the stored record cannot be decoded.
type SessionPersistence interface {
	Save(ctx context.Context, s domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}
