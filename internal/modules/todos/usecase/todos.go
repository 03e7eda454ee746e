package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"todohub/internal/modules/todos/domain"
	"todohub/internal/modules/todos/dto"
	todosin "todohub/internal/modules/todos/port/in"
	todosout "todohub/internal/modules/todos/port/out"
	"todohub/internal/modules/todos/service"
	apperrors "todohub/internal/platform/errors"
)

// Store mirrors the server's todo list. Every mutation is confirmed: the local
// collection changes only after the server acknowledges the call, so there is
// no rollback path. Server order is preserved verbatim.
type Store struct {
	deriver service.Deriver
	api     todosout.API
	cache   todosout.SnapshotCache // optional

	mu        sync.RWMutex
	items     []domain.Todo
	fetched   bool
	isLoading bool
	lastError string
}

func NewStore(deriver service.Deriver, api todosout.API, cache todosout.SnapshotCache) todosin.Usecase {
	return &Store{deriver: deriver, api: api, cache: cache}
}

func (s *Store) Prime(ctx context.Context) {
	if s.cache == nil {
		return
	}
	items, err := s.cache.Load(ctx)
	if err != nil {
		slog.Debug("snapshot cache unavailable", "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetched || len(s.items) > 0 {
		return
	}
	s.items = items
}

// FetchAll replaces the collection wholesale. An unauthenticated failure
// propagates so the caller can redirect to login; it is not swallowed into
// the store's error field.
func (s *Store) FetchAll(ctx context.Context) (dto.ListOutput, error) {
	s.setLoading(true)
	items, err := s.api.List(ctx)
	if err != nil {
		s.mu.Lock()
		s.isLoading = false
		if !errors.Is(err, apperrors.ErrUnauthenticated) {
			s.lastError = err.Error()
		}
		s.mu.Unlock()
		return s.Snapshot(), err
	}
	s.mu.Lock()
	s.items = items
	s.fetched = true
	s.isLoading = false
	s.lastError = ""
	s.mu.Unlock()
	s.writeCache(ctx)
	return s.Snapshot(), nil
}

// Add appends the server-returned item. A blank title is a silent no-op with
// no remote call.
func (s *Store) Add(ctx context.Context, title string) (dto.TodoOutput, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dto.TodoOutput{}, nil
	}
	item, err := s.api.Create(ctx, title)
	if err != nil {
		s.captureError(err)
		return dto.TodoOutput{}, err
	}
	s.mu.Lock()
	s.items = append(s.items, item)
	s.lastError = ""
	s.mu.Unlock()
	s.writeCache(ctx)
	return toOutput(item), nil
}

// Update replaces the matching item in place once the server acknowledges.
// An id unknown locally after the ack is dropped without error.
func (s *Store) Update(ctx context.Context, input dto.UpdateInput) (dto.TodoOutput, error) {
	item, err := s.api.Update(ctx, input.ID, input.Title, input.Completed)
	if err != nil {
		s.captureError(err)
		return dto.TodoOutput{}, err
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			break
		}
	}
	s.lastError = ""
	s.mu.Unlock()
	s.writeCache(ctx)
	return toOutput(item), nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.captureError(err)
		return err
	}
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.lastError = ""
	s.mu.Unlock()
	s.writeCache(ctx)
	return nil
}

func (s *Store) Snapshot() dto.ListOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := dto.ListOutput{Loading: s.isLoading, LastError: s.lastError, Items: make([]dto.TodoOutput, 0, len(s.items))}
	for _, item := range s.items {
		out.Items = append(out.Items, toOutput(item))
	}
	return out
}

func (s *Store) Filtered(filter string) []dto.TodoOutput {
	s.mu.RLock()
	items := make([]domain.Todo, len(s.items))
	copy(items, s.items)
	s.mu.RUnlock()
	filtered := s.deriver.Apply(items, domain.Filter(filter))
	out := make([]dto.TodoOutput, 0, len(filtered))
	for _, item := range filtered {
		out = append(out, toOutput(item))
	}
	return out
}

func (s *Store) Stats() dto.StatsOutput {
	s.mu.RLock()
	items := make([]domain.Todo, len(s.items))
	copy(items, s.items)
	s.mu.RUnlock()
	stats := s.deriver.Compute(items)
	return dto.StatsOutput{Total: stats.Total, Completed: stats.Completed, Active: stats.Active, Percent: stats.Percent}
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = v
}

func (s *Store) captureError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		s.lastError = err.Error()
	}
}

func (s *Store) writeCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.mu.RLock()
	items := make([]domain.Todo, len(s.items))
	copy(items, s.items)
	s.mu.RUnlock()
	if err := s.cache.Replace(ctx, items); err != nil {
		slog.Debug("snapshot cache write failed", "error", err)
	}
}

func toOutput(item domain.Todo) dto.TodoOutput {
	return dto.TodoOutput{ID: item.ID, Title: item.Title, Completed: item.Completed, CreatedAt: item.CreatedAt}
}
