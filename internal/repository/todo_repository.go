package repository

import (
	"context"
	"database/sql"
	"errors"

	"todo-service/internal/entity"
)

// TodoRepository scopes every statement to the owning user.
type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db}
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int) ([]entity.Todo, error) {
	todos := []entity.Todo{}

	query := `SELECT id, task, complete, user_id FROM todos WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var todo entity.Todo
		err := rows.Scan(&todo.ID, &todo.Task, &todo.Complete, &todo.UserID)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *entity.Todo) (*entity.Todo, error) {
	query := `INSERT INTO todos (task, complete, user_id) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, todo.Task, todo.Complete, todo.UserID)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	todo.ID = int(id)
	return todo, nil
}

// Update replaces task and complete on the todo matching both id and owner. The DSN
// sets clientFoundRows, so an unchanged row still counts as affected.
func (r *TodoRepository) Update(ctx context.Context, todo *entity.Todo) (*entity.Todo, error) {
	query := `UPDATE todos SET task = ?, complete = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, todo.Task, todo.Complete, todo.ID, todo.UserID)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTodoNotFound
	}

	return todo, nil
}

// Delete removes the todo matching id and owner and returns the row as it was.
func (r *TodoRepository) Delete(ctx context.Context, id, userID int) (*entity.Todo, error) {
	// Start a transaction
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	todo := &entity.Todo{}
	selectQuery := `SELECT id, task, complete, user_id FROM todos WHERE id = ? AND user_id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, selectQuery, id, userID).Scan(&todo.ID, &todo.Task, &todo.Complete, &todo.UserID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	deleteQuery := `DELETE FROM todos WHERE id = ? AND user_id = ?`
	_, err = tx.ExecContext(ctx, deleteQuery, id, userID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Commit the transaction
	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return todo, nil
}
