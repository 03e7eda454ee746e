package in

import (
	"context"

	"todohub/internal/modules/todos/dto"
	todosin "todohub/internal/modules/todos/port/in"
)

type CLIHandler struct {
	usecase todosin.Usecase
}

func NewCLIHandler(usecase todosin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, filter string) ([]dto.TodoOutput, error) {
	if _, err := h.usecase.FetchAll(ctx); err != nil {
		return nil, err
	}
	return h.usecase.Filtered(filter), nil
}

func (h CLIHandler) Add(ctx context.Context, title string) (dto.TodoOutput, error) {
	return h.usecase.Add(ctx, title)
}

func (h CLIHandler) SetCompleted(ctx context.Context, id string, completed bool) (dto.TodoOutput, error) {
	if _, err := h.usecase.FetchAll(ctx); err != nil {
		return dto.TodoOutput{}, err
	}
	title := ""
	for _, item := range h.usecase.Snapshot().Items {
		if item.ID == id {
			title = item.Title
			break
		}
	}
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, Title: title, Completed: completed})
}

func (h CLIHandler) Rename(ctx context.Context, id, title string) (dto.TodoOutput, error) {
	if _, err := h.usecase.FetchAll(ctx); err != nil {
		return dto.TodoOutput{}, err
	}
	completed := false
	for _, item := range h.usecase.Snapshot().Items {
		if item.ID == id {
			completed = item.Completed
			break
		}
	}
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, Title: title, Completed: completed})
}

func (h CLIHandler) Remove(ctx context.Context, id string) error {
	return h.usecase.Remove(ctx, id)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	if _, err := h.usecase.FetchAll(ctx); err != nil {
		return dto.StatsOutput{}, err
	}
	return h.usecase.Stats(), nil
}
