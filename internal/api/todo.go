package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"todo-service/internal/apperror"
	"todo-service/internal/auth"
	"todo-service/internal/entity"
	"todo-service/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

// NewTodoHandler creates a new instance of TodoHandler
func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// ListTodos lists the caller's todos --> GET /api/todos
func (h *TodoHandler) ListTodos(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.ListTodos(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todos)
}

// CreateTodo --> POST /api/todos
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	input, err := bindTodoInput(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todo)
}

// UpdateTodo --> PUT /api/todos/:id
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	id, err := todoID(c)
	if err != nil {
		return err
	}

	input, err := bindTodoInput(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), userID, id, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo --> DELETE /api/todos/:id
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	id, err := todoID(c)
	if err != nil {
		return err
	}

	deleted, err := h.todoService.DeleteTodo(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleted)
}

func todoID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid ID")
	}
	return id, nil
}

func bindTodoInput(c echo.Context) (*entity.TodoInput, error) {
	input := &entity.TodoInput{}
	if err := c.Bind(input); err != nil {
		return nil, apperror.Validation("Invalid request payload")
	}
	if err := c.Validate(input); err != nil {
		return nil, err
	}
	return input, nil
}
