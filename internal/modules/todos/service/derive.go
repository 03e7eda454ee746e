package service

import (
	"math"

	"todohub/internal/modules/todos/domain"
)

// Deriver computes the pure projections of a collection. Nothing here mutates
// or stores state.
type Deriver struct{}

func (Deriver) Apply(items []domain.Todo, filter domain.Filter) []domain.Todo {
	if filter == domain.FilterAll || filter == "" {
		return items
	}
	wantCompleted := filter == domain.FilterCompleted
	out := make([]domain.Todo, 0, len(items))
	for _, item := range items {
		if item.Completed == wantCompleted {
			out = append(out, item)
		}
	}
	return out
}

func (Deriver) Compute(items []domain.Todo) domain.Stats {
	stats := domain.Stats{Total: len(items)}
	for _, item := range items {
		if item.Completed {
			stats.Completed++
		}
	}
	stats.Active = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.Percent = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}
