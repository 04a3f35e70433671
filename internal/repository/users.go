// Package repository provides PostgreSQL persistence for users and recipes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/atinyakov/RecipeShare/internal/models"
	"github.com/lib/pq"
)

// PostgresUserRepository implements the credential store on PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const userColumns = `id, name, email, password_hash, created_recipes, saved_recipes`

// EmailExists reports whether a user with exactly this email is registered.
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("EmailExists: %w", err)
	}
	return exists, nil
}

// Create inserts user. A taken email or name is reported as
// apperrors.ErrConflict.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.PasswordHash,
		pq.Array(nonNil(user.CreatedRecipes)), pq.Array(nonNil(user.SavedRecipes)),
	)
	switch violatedConstraint(err) {
	case "":
	case "users_name_key":
		return apperrors.ErrConflict.WithMessage("Name already in use")
	default:
		return apperrors.ErrConflict.WithMessage("Email already in use")
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmailFold returns every user whose email matches email ignoring
// case. An exact match comes first, then the rest in signup order. No
// match yields an empty slice.
func (r *PostgresUserRepository) FindByEmailFold(ctx context.Context, email string) ([]*models.User, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) ORDER BY (email = $1) DESC, seq`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("FindByEmailFold: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindByEmailFold: %w", err)
	}
	return users, nil
}

// FindByID returns the user with the given id.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		pq.Array(&u.CreatedRecipes), pq.Array(&u.SavedRecipes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedRecipes = nonNil(u.CreatedRecipes)
	u.SavedRecipes = nonNil(u.SavedRecipes)
	return &u, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
