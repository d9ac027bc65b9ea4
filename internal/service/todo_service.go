package service

import (
	"context"
	"errors"

	"todo-service/internal/apperror"
	"todo-service/internal/entity"
	"todo-service/internal/events"
	"todo-service/internal/repository"
)

// TodoStore is implemented by *repository.TodoRepository.
type TodoStore interface {
	ListByUser(ctx context.Context, userID int) ([]entity.Todo, error)
	Create(ctx context.Context, todo *entity.Todo) (*entity.Todo, error)
	Update(ctx context.Context, todo *entity.Todo) (*entity.Todo, error)
	Delete(ctx context.Context, id, userID int) (*entity.Todo, error)
}

// TodoService is a service that provides todo operations for one owner at a time.
type TodoService struct {
	store     TodoStore
	publisher events.Publisher
}

// NewTodoService creates a new instance of TodoService
func NewTodoService(store TodoStore, publisher events.Publisher) *TodoService {
	return &TodoService{
		store:     store,
		publisher: publisher,
	}
}

// ListTodos returns every todo owned by userID, possibly none.
func (s *TodoService) ListTodos(ctx context.Context, userID int) ([]entity.Todo, error) {
	todos, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing todos for user %d", userID)
		return nil, apperror.Persistence(err)
	}

	return todos, nil
}

// CreateTodo creates a new todo owned by userID
func (s *TodoService) CreateTodo(ctx context.Context, userID int, input *entity.TodoInput) (*entity.Todo, error) {
	if input.Task == "" {
		return nil, apperror.Validation("task is required")
	}

	todo, err := s.store.Create(ctx, &entity.Todo{
		Task:     input.Task,
		Complete: input.Complete,
		UserID:   userID,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating todo for user %d", userID)
		return nil, apperror.Persistence(err)
	}

	s.publish(ctx, "created", todo)
	return todo, nil
}

// UpdateTodo replaces task and complete of a todo owned by userID.
func (s *TodoService) UpdateTodo(ctx context.Context, userID, id int, input *entity.TodoInput) (*entity.Todo, error) {
	if input.Task == "" {
		return nil, apperror.Validation("task is required")
	}

	todo, err := s.store.Update(ctx, &entity.Todo{
		ID:       id,
		Task:     input.Task,
		Complete: input.Complete,
		UserID:   userID,
	})
	if err != nil {
		return nil, s.translate(err, id, userID, "updating")
	}

	s.publish(ctx, "updated", todo)
	return todo, nil
}

// DeleteTodo deletes a todo owned by userID and confirms with its last state.
func (s *TodoService) DeleteTodo(ctx context.Context, userID, id int) (*entity.DeletedTodo, error) {
	todo, err := s.store.Delete(ctx, id, userID)
	if err != nil {
		return nil, s.translate(err, id, userID, "deleting")
	}

	s.publish(ctx, "deleted", todo)
	return &entity.DeletedTodo{Deleted: true, Todo: todo}, nil
}

// translate maps a missing row to NotFound whether the todo does not exist or belongs
// to somebody else.
func (s *TodoService) translate(err error, id, userID int, action string) error {
	if errors.Is(err, repository.ErrTodoNotFound) {
		logger.Warn().Msgf("Todo %d not found for user %d", id, userID)
		return apperror.NotFound("todo %d not found", id)
	}
	logger.Error().Err(err).Msgf("Error %s todo %d", action, id)
	return apperror.Persistence(err)
}

// publish is best effort: the write already succeeded.
func (s *TodoService) publish(ctx context.Context, eventType string, todo *entity.Todo) {
	if err := s.publisher.PublishTodoEvent(ctx, eventType, todo); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for todo %d", eventType, todo.ID)
	}
}
