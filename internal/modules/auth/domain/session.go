package domain

// User is the authenticated identity as the backend reports it.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Status is the authentication lifecycle of the local session.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusPending         Status = "pending"
	StatusAuthenticated   Status = "authenticated"
	StatusFailed          Status = "failed"
)

// Session is a point-in-time view of the session store. Identity is non-nil
// exactly when Status is StatusAuthenticated.
type Session struct {
	Identity  *User
	Status    Status
	LastError string
}

func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Identity != nil
}

// Settled reports whether no session action is in flight.
func (s Session) Settled() bool {
	return s.Status != StatusPending
}
