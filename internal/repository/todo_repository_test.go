package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-service/internal/entity"
)

var todoColumns = []string{"id", "task", "complete", "user_id"}

func TestListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, task, complete, user_id FROM todos WHERE user_id = ? ORDER BY id`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(todoColumns).
			AddRow(1, "wash dishes", false, 1).
			AddRow(4, "walk dog", true, 1))

	todos, err := NewTodoRepository(db).ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []entity.Todo{
		{ID: 1, Task: "wash dishes", Complete: false, UserID: 1},
		{ID: 4, Task: "walk dog", Complete: true, UserID: 1},
	}, todos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, task, complete, user_id FROM todos`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(todoColumns))

	todos, err := NewTodoRepository(db).ListByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestListByUser_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, task, complete, user_id FROM todos`)).
		WillReturnRows(sqlmock.NewRows(todoColumns).
			AddRow(1, "wash dishes", false, 1).
			RowError(0, errors.New("read timeout")))

	_, err = NewTodoRepository(db).ListByUser(context.Background(), 1)
	assert.Error(t, err)
}

func TestCreateTodo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO todos (task, complete, user_id) VALUES (?, ?, ?)`)).
		WithArgs("buy milk", false, 5).
		WillReturnResult(sqlmock.NewResult(21, 1))

	todo, err := NewTodoRepository(db).Create(context.Background(), &entity.Todo{Task: "buy milk", UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, &entity.Todo{ID: 21, Task: "buy milk", Complete: false, UserID: 5}, todo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTodo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE todos SET task = ?, complete = ? WHERE id = ? AND user_id = ?`)).
		WithArgs("buy oat milk", true, 21, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	todo, err := NewTodoRepository(db).Update(context.Background(), &entity.Todo{ID: 21, Task: "buy oat milk", Complete: true, UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", todo.Task)
	assert.True(t, todo.Complete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTodo_OtherOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE todos SET task = ?, complete = ? WHERE id = ? AND user_id = ?`)).
		WithArgs("hijack", true, 21, 6).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = NewTodoRepository(db).Update(context.Background(), &entity.Todo{ID: 21, Task: "hijack", Complete: true, UserID: 6})
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestDeleteTodo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, task, complete, user_id FROM todos WHERE id = ? AND user_id = ? FOR UPDATE`)).
		WithArgs(21, 5).
		WillReturnRows(sqlmock.NewRows(todoColumns).AddRow(21, "buy milk", true, 5))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM todos WHERE id = ? AND user_id = ?`)).
		WithArgs(21, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	todo, err := NewTodoRepository(db).Delete(context.Background(), 21, 5)
	require.NoError(t, err)
	assert.Equal(t, &entity.Todo{ID: 21, Task: "buy milk", Complete: true, UserID: 5}, todo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTodo_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, task, complete, user_id FROM todos WHERE id = ? AND user_id = ? FOR UPDATE`)).
		WithArgs(21, 6).
		WillReturnRows(sqlmock.NewRows(todoColumns))
	mock.ExpectRollback()

	_, err = NewTodoRepository(db).Delete(context.Background(), 21, 6)
	assert.ErrorIs(t, err, ErrTodoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTodo_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, task, complete, user_id FROM todos`)).
		WillReturnRows(sqlmock.NewRows(todoColumns).AddRow(21, "buy milk", true, 5))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM todos`)).
		WillReturnError(errors.New("lock wait timeout exceeded"))
	mock.ExpectRollback()

	_, err = NewTodoRepository(db).Delete(context.Background(), 21, 5)
	assert.EqualError(t, err, "lock wait timeout exceeded")
	assert.NoError(t, mock.ExpectationsWereMet())
}
