package in

import (
	"context"

	"todohub/internal/modules/auth/dto"
	authin "todohub/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (dto.SessionOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Register(ctx context.Context, username, email, password string) (dto.SessionOutput, error) {
	return h.usecase.Register(ctx, dto.RegisterInput{Username: username, Email: email, Password: password})
}

func (h CLIHandler) LoginWithGoogle(ctx context.Context, idToken string) (dto.SessionOutput, error) {
	return h.usecase.LoginWithGoogle(ctx, dto.GoogleLoginInput{IDToken: idToken})
}

func (h CLIHandler) WhoAmI(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.VerifyCurrentIdentity(ctx)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) ListUsers(ctx context.Context) ([]dto.UserOutput, error) {
	return h.usecase.ListUsers(ctx)
}
