package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-match/internal/database"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
)

// PostgresUserRepository implements user.Repository. Usernames are unique
// regardless of case.
type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, type) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Username, u.PasswordHash, u.Type,
	)
	if err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, type, created_at, updated_at FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, type, created_at, updated_at FROM users WHERE lower(username) = lower($1)`,
		strings.TrimSpace(username),
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(username) = lower($1))`,
		strings.TrimSpace(username),
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Type, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, database.ErrNoRows)
}
