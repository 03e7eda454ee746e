package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"todohub/internal/modules/auth/domain"
	authout "todohub/internal/modules/auth/port/out"
	apperrors "todohub/internal/platform/errors"
)

// CredentialClearer drops the locally persisted session credential.
type CredentialClearer interface {
	Clear()
}

// HTTPAPI talks to the /auth endpoints. The session credential is a cookie
// managed by the http.Client's jar; nothing above this adapter sees it.
type HTTPAPI struct {
	base   string
	client *http.Client
	creds  CredentialClearer // optional
}

func NewHTTPAPI(baseURL string, client *http.Client, creds CredentialClearer) authout.API {
	return &HTTPAPI{base: strings.TrimRight(baseURL, "/"), client: client, creds: creds}
}

// userPayload tolerates both id shapes the backend emits: session endpoints
// return "id", the roster returns "_id".
type userPayload struct {
	ID        string `json:"id"`
	AltID     string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

func (p userPayload) toDomain() domain.User {
	id := p.ID
	if id == "" {
		id = p.AltID
	}
	return domain.User{ID: id, Name: p.Name, Email: p.Email, AvatarURL: p.AvatarURL}
}

type sessionEnvelope struct {
	User userPayload `json:"user"`
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *HTTPAPI) Login(ctx context.Context, email, password string) (domain.User, error) {
	return a.postForUser(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

func (a *HTTPAPI) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	return a.postForUser(ctx, "/auth/register", map[string]string{"username": username, "email": email, "password": password})
}

func (a *HTTPAPI) GoogleLogin(ctx context.Context, idToken string) (domain.User, error) {
	return a.postForUser(ctx, "/auth/google", map[string]string{"idToken": idToken})
}

func (a *HTTPAPI) CurrentUser(ctx context.Context) (domain.User, error) {
	resp, err := a.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return domain.User{}, err
	}
	defer closeBody(resp)
	if err := checkStatus(resp); err != nil {
		return domain.User{}, err
	}
	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.User{}, fmt.Errorf("decode current user: %w", err)
	}
	return payload.toDomain(), nil
}

// Logout invalidates the remote session and drops the stored cookie. The
// credential goes away whatever the backend answered; a stale cookie must not
// outlive a logout.
func (a *HTTPAPI) Logout(ctx context.Context) error {
	if a.creds != nil {
		defer a.creds.Clear()
	}
	resp, err := a.do(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return checkStatus(resp)
}

func (a *HTTPAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	resp, err := a.do(ctx, http.MethodGet, "/auth/users", nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var payloads []userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]domain.User, 0, len(payloads))
	for _, p := range payloads {
		users = append(users, p.toDomain())
	}
	return users, nil
}

func (a *HTTPAPI) postForUser(ctx context.Context, path string, body map[string]string) (domain.User, error) {
	resp, err := a.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return domain.User{}, err
	}
	defer closeBody(resp)
	if err := checkStatus(resp); err != nil {
		return domain.User{}, err
	}
	var envelope sessionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return domain.User{}, fmt.Errorf("decode session response: %w", err)
	}
	return envelope.User.toDomain(), nil
}

func (a *HTTPAPI) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnreachable, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return apperrors.ErrUnauthenticated
	}
	var envelope errorEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&envelope); err == nil {
		if envelope.Error != "" {
			return fmt.Errorf("%s", envelope.Error)
		}
		if envelope.Message != "" {
			return fmt.Errorf("%s", envelope.Message)
		}
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
