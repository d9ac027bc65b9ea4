package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-service/internal/apperror"
	"todo-service/internal/entity"
	"todo-service/internal/repository"
)

// memoryTodos mirrors the owner-scoped semantics of the SQL repository.
type memoryTodos struct {
	rows   map[int]entity.Todo
	nextID int
	err    error
}

func newMemoryTodos() *memoryTodos {
	return &memoryTodos{rows: map[int]entity.Todo{}, nextID: 1}
}

func (m *memoryTodos) ListByUser(_ context.Context, userID int) ([]entity.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	todos := []entity.Todo{}
	for _, todo := range m.rows {
		if todo.UserID == userID {
			todos = append(todos, todo)
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (m *memoryTodos) Create(_ context.Context, todo *entity.Todo) (*entity.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	todo.ID = m.nextID
	m.nextID++
	m.rows[todo.ID] = *todo
	return todo, nil
}

func (m *memoryTodos) Update(_ context.Context, todo *entity.Todo) (*entity.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	existing, ok := m.rows[todo.ID]
	if !ok || existing.UserID != todo.UserID {
		return nil, repository.ErrTodoNotFound
	}
	m.rows[todo.ID] = *todo
	return todo, nil
}

func (m *memoryTodos) Delete(_ context.Context, id, userID int) (*entity.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	existing, ok := m.rows[id]
	if !ok || existing.UserID != userID {
		return nil, repository.ErrTodoNotFound
	}
	delete(m.rows, id)
	return &existing, nil
}

type recordedEvent struct {
	eventType string
	todoID    int
}

type recordingPublisher struct {
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) PublishTodoEvent(_ context.Context, eventType string, todo *entity.Todo) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, recordedEvent{eventType, todo.ID})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestTodoLifecycle(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewTodoService(newMemoryTodos(), publisher)
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, 1, &entity.TodoInput{Task: "wash dishes"})
	require.NoError(t, err)
	assert.Equal(t, &entity.Todo{ID: 1, Task: "wash dishes", Complete: false, UserID: 1}, created)

	todos, err := svc.ListTodos(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []entity.Todo{*created}, todos)

	updated, err := svc.UpdateTodo(ctx, 1, created.ID, &entity.TodoInput{Task: "dry dishes", Complete: true})
	require.NoError(t, err)
	assert.Equal(t, "dry dishes", updated.Task)

	todos, err = svc.ListTodos(ctx, 1)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "dry dishes", todos[0].Task)
	assert.True(t, todos[0].Complete)

	deleted, err := svc.DeleteTodo(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, "dry dishes", deleted.Todo.Task)

	todos, err = svc.ListTodos(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, todos)

	assert.Equal(t, []recordedEvent{{"created", 1}, {"updated", 1}, {"deleted", 1}}, publisher.events)
}

func TestTodoOwnership(t *testing.T) {
	svc := NewTodoService(newMemoryTodos(), &recordingPublisher{})
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, 1, &entity.TodoInput{Task: "private"})
	require.NoError(t, err)

	others, err := svc.ListTodos(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, others)

	_, err = svc.UpdateTodo(ctx, 2, created.ID, &entity.TodoInput{Task: "hijacked"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = svc.DeleteTodo(ctx, 2, created.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	mine, err := svc.ListTodos(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "private", mine[0].Task)
}

func TestTodoService_ValidationAndPersistence(t *testing.T) {
	store := newMemoryTodos()
	svc := NewTodoService(store, &recordingPublisher{})
	ctx := context.Background()

	_, err := svc.CreateTodo(ctx, 1, &entity.TodoInput{Task: ""})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.UpdateTodo(ctx, 1, 1, &entity.TodoInput{Task: ""})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	store.err = errors.New("deadlock found")
	_, err = svc.ListTodos(ctx, 1)
	assert.True(t, apperror.Is(err, apperror.KindPersistence))

	_, err = svc.DeleteTodo(ctx, 1, 1)
	assert.True(t, apperror.Is(err, apperror.KindPersistence))
}

func TestTodoService_PublishFailureDoesNotFailWrite(t *testing.T) {
	svc := NewTodoService(newMemoryTodos(), &recordingPublisher{err: errors.New("broker down")})

	created, err := svc.CreateTodo(context.Background(), 1, &entity.TodoInput{Task: "still saved"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}
