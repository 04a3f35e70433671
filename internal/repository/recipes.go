package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/atinyakov/RecipeShare/internal/models"
)

// PostgresRecipeRepository stores recipes as JSONB documents.
// The id, title and created_by columns mirror document fields so that
// uniqueness and ownership can be enforced by the database.
type PostgresRecipeRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRecipeRepository creates a new PostgresRecipeRepository using the provided *sql.DB.
func NewPostgresRecipeRepository(db *sql.DB) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{DB: db}
}

var errDuplicateTitle = apperrors.ErrConflict.WithMessage("Recipe title already exists")

// Create inserts a new recipe document.
func (r *PostgresRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	doc, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("marshal recipe: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO recipes (id, title, created_by, doc) VALUES ($1, $2, $3, $4)
	`, recipe.ID, recipe.Title, recipe.CreatedBy, doc)
	if violatedConstraint(err) != "" {
		return errDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// List returns every recipe whose document contains all filter attributes
// with equal values, in insertion order. An empty filter returns all recipes.
func (r *PostgresRecipeRepository) List(ctx context.Context, filter map[string]string) ([]models.Recipe, error) {
	if len(filter) == 0 {
		return r.query(ctx, `SELECT doc FROM recipes ORDER BY seq`)
	}

	match, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}
	return r.query(ctx, `SELECT doc FROM recipes WHERE doc @> $1::jsonb ORDER BY seq`, match)
}

// ListByOwner returns the recipes created by ownerID, in insertion order.
func (r *PostgresRecipeRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error) {
	return r.query(ctx, `SELECT doc FROM recipes WHERE created_by = $1 ORDER BY seq`, ownerID)
}

// Get returns the recipe with the given id.
func (r *PostgresRecipeRepository) Get(ctx context.Context, id string) (*models.Recipe, error) {
	var doc []byte
	err := r.DB.QueryRowContext(ctx, `SELECT doc FROM recipes WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	var recipe models.Recipe
	if err := json.Unmarshal(doc, &recipe); err != nil {
		return nil, fmt.Errorf("decode recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// Owner returns the id of the user who created the recipe.
func (r *PostgresRecipeRepository) Owner(ctx context.Context, id string) (string, error) {
	var owner string
	err := r.DB.QueryRowContext(ctx, `SELECT created_by FROM recipes WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("get recipe owner: %w", err)
	}
	return owner, nil
}

// Replace overwrites the stored document for recipe.ID. The created_by
// column is never touched.
func (r *PostgresRecipeRepository) Replace(ctx context.Context, recipe *models.Recipe) error {
	doc, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("marshal recipe: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE recipes SET title = $2, doc = $3 WHERE id = $1
	`, recipe.ID, recipe.Title, doc)
	if violatedConstraint(err) != "" {
		return errDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("replace recipe: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes the recipe with the given id.
func (r *PostgresRecipeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRecipeRepository) query(ctx context.Context, query string, args ...any) ([]models.Recipe, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]models.Recipe, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var recipe models.Recipe
		if err := json.Unmarshal(doc, &recipe); err != nil {
			return nil, fmt.Errorf("decode recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
