package seed

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// Hasher turns a development password into the stored hash.
type Hasher interface {
	Hash(password string) (string, error)
}

// Load inserts users then todos as two batched statements in one transaction.
func Load(ctx context.Context, db *sql.DB, hasher Hasher, users []User, todos []Todo) error {
	if len(users) == 0 && len(todos) == 0 {
		return errors.New("nothing to seed")
	}

	// Start a transaction
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if len(users) > 0 {
		userQuery := `INSERT INTO users (id, email, hash, display_name) VALUES `
		var values []interface{}
		placeholders := make([]string, 0, len(users))
		for _, user := range users {
			hash, err := hasher.Hash(user.Password)
			if err != nil {
				tx.Rollback()
				return err
			}
			placeholders = append(placeholders, "(?, ?, ?, ?)")
			values = append(values, user.ID, user.Email, hash, user.DisplayName)
		}

		_, err = tx.ExecContext(ctx, userQuery+strings.Join(placeholders, ", "), values...)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	if len(todos) > 0 {
		todoQuery := `INSERT INTO todos (task, complete, user_id) VALUES `
		var values []interface{}
		placeholders := make([]string, 0, len(todos))
		for _, todo := range todos {
			placeholders = append(placeholders, "(?, ?, ?)")
			values = append(values, todo.Task, todo.Complete, todo.UserID)
		}

		_, err = tx.ExecContext(ctx, todoQuery+strings.Join(placeholders, ", "), values...)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	// Commit the transaction
	err = tx.Commit()
	if err != nil {
		return err
	}

	log.Info().Int("users", len(users)).Int("todos", len(todos)).Msg("seed data load complete")
	return nil
}
