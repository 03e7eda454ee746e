package out

import (
	"context"

	"todohub/internal/modules/auth/domain"
)

// API is the remote authentication surface. Implementations carry the session
// credential (cookie) themselves; it is invisible to this layer.
type API interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, username, email, password string) (domain.User, error)
	GoogleLogin(ctx context.Context, idToken string) (domain.User, error)
	CurrentUser(ctx context.Context) (domain.User, error)
	Logout(ctx context.Context) error
	ListUsers(ctx context.Context) ([]domain.User, error)
}
