package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const usersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
		hash VARCHAR(255) NOT NULL,
		display_name VARCHAR(255) NOT NULL DEFAULT '',
		UNIQUE KEY email_idx (email)
	);
`

const todosTable = `
	CREATE TABLE IF NOT EXISTS todos (
		id INT AUTO_INCREMENT PRIMARY KEY,
		task TEXT NOT NULL,
		complete BOOLEAN NOT NULL DEFAULT FALSE,
		user_id INT NOT NULL,
		INDEX todos_user_idx (user_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
`

// RetryWait is the pause between attempts.
var RetryWait = 1 * time.Second

// AutoMigrateUsers creates the users table if it does not exist.
func AutoMigrateUsers(ctx context.Context, retries int, db *sql.DB) error {
	return execWithRetry(ctx, retries, db, usersTable)
}

// AutoMigrateTodos creates the todos table if it does not exist. Run it after
// AutoMigrateUsers because of the foreign key.
func AutoMigrateTodos(ctx context.Context, retries int, db *sql.DB) error {
	return execWithRetry(ctx, retries, db, todosTable)
}

// AutoMigrate creates every table in dependency order.
func AutoMigrate(ctx context.Context, retries int, db *sql.DB) error {
	if err := AutoMigrateUsers(ctx, retries, db); err != nil {
		return fmt.Errorf("users: %w", err)
	}
	if err := AutoMigrateTodos(ctx, retries, db); err != nil {
		return fmt.Errorf("todos: %w", err)
	}
	return nil
}

func execWithRetry(ctx context.Context, retries int, db *sql.DB, query string) error {
	_, err := db.ExecContext(ctx, query)
	for i := 0; err != nil && i < retries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryWait):
		}
		_, err = db.ExecContext(ctx, query)
	}
	return err
}
