package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"todohub/internal/modules/todos/domain"
	todosout "todohub/internal/modules/todos/port/out"
	apperrors "todohub/internal/platform/errors"
)

// HTTPAPI talks to the /todos endpoints with the shared cookie-bearing client.
type HTTPAPI struct {
	base   string
	client *http.Client
}

func NewHTTPAPI(baseURL string, client *http.Client) todosout.API {
	return &HTTPAPI{base: strings.TrimRight(baseURL, "/"), client: client}
}

type todoPayload struct {
	ID        string    `json:"id"`
	AltID     string    `json:"_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p todoPayload) toDomain() domain.Todo {
	id := p.ID
	if id == "" {
		id = p.AltID
	}
	return domain.Todo{ID: id, Title: p.Title, Completed: p.Completed, CreatedAt: p.CreatedAt}
}

func (a *HTTPAPI) List(ctx context.Context) ([]domain.Todo, error) {
	resp, err := a.do(ctx, http.MethodGet, "/todos", nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var payloads []todoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	items := make([]domain.Todo, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, p.toDomain())
	}
	return items, nil
}

func (a *HTTPAPI) Create(ctx context.Context, title string) (domain.Todo, error) {
	return a.doForTodo(ctx, http.MethodPost, "/todos", map[string]any{"title": title})
}

func (a *HTTPAPI) Update(ctx context.Context, id, title string, completed bool) (domain.Todo, error) {
	return a.doForTodo(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), map[string]any{"title": title, "completed": completed})
}

func (a *HTTPAPI) Delete(ctx context.Context, id string) error {
	resp, err := a.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return checkStatus(resp)
}

func (a *HTTPAPI) doForTodo(ctx context.Context, method, path string, body any) (domain.Todo, error) {
	resp, err := a.do(ctx, method, path, body)
	if err != nil {
		return domain.Todo{}, err
	}
	defer closeBody(resp)
	if err := checkStatus(resp); err != nil {
		return domain.Todo{}, err
	}
	var payload todoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Todo{}, fmt.Errorf("decode todo: %w", err)
	}
	return payload.toDomain(), nil
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
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.ErrNotFound
	}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
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
