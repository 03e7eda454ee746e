package in

import (
	"context"

	"todohub/internal/modules/auth/domain"
	"todohub/internal/modules/auth/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error)
	LoginWithGoogle(ctx context.Context, input dto.GoogleLoginInput) (dto.SessionOutput, error)
	VerifyCurrentIdentity(ctx context.Context) (dto.SessionOutput, error)
	Logout(ctx context.Context) error
	ListUsers(ctx context.Context) ([]dto.UserOutput, error)

	Snapshot() domain.Session
	ClearError()
}
