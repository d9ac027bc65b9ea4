package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrTodoNotFound   = errors.New("todo not found")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
