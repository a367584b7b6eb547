package ports

import (
	"context"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// AuthService is the identity provider contract: it validates credentials
// and issues a token. Any provider satisfying it (password DB, SSO, OAuth)
// is substitutable from the session store's point of view.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
