package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo-service/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

// FindCredentialsByEmail returns the id and hash for email, or nil when no user has it.
// It is the only query that reads the hash column.
func (r *UserRepository) FindCredentialsByEmail(ctx context.Context, email string) (*entity.Credentials, error) {
	creds := &entity.Credentials{}
	query := `SELECT id, hash FROM users WHERE email = ?`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&creds.ID, &creds.Hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return creds, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User, hash string) (*entity.Profile, error) {
	query := `INSERT INTO users (email, hash, display_name) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Email, hash, user.DisplayName)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateEmail, err)
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &entity.Profile{
		ID:          int(id),
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}
