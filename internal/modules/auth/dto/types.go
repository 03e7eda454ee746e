package dto

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type GoogleLoginInput struct {
	IDToken string
}

type SessionOutput struct {
	UserID    string
	Name      string
	Email     string
	AvatarURL string
	Status    string
	LastError string
}

type UserOutput struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
}
