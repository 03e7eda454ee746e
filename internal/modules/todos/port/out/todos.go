package out

import (
	"context"

	"todohub/internal/modules/todos/domain"
)

// API is the remote todo surface. The returned order is authoritative and
// preserved verbatim by the store.
type API interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Create(ctx context.Context, title string) (domain.Todo, error)
	Update(ctx context.Context, id, title string, completed bool) (domain.Todo, error)
	Delete(ctx context.Context, id string) error
}

// SnapshotCache persists the last confirmed collection so the next process
// start can paint something before its first fetch settles.
type SnapshotCache interface {
	Load(ctx context.Context) ([]domain.Todo, error)
	Replace(ctx context.Context, items []domain.Todo) error
}
