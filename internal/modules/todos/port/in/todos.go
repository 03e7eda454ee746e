package in

import (
	"context"

	"todohub/internal/modules/todos/dto"
)

type Usecase interface {
	// Prime seeds the collection from the local snapshot cache before the
	// first fetch settles. Display-only; never authoritative.
	Prime(ctx context.Context)

	FetchAll(ctx context.Context) (dto.ListOutput, error)
	Add(ctx context.Context, title string) (dto.TodoOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.TodoOutput, error)
	Remove(ctx context.Context, id string) error

	Snapshot() dto.ListOutput
	// Filtered applies a status filter: "all", "active" or "completed".
	Filtered(filter string) []dto.TodoOutput
	Stats() dto.StatsOutput
	ClearError()
}
