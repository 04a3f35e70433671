package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/atinyakov/RecipeShare/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRecipeMock(t *testing.T) (*PostgresRecipeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRecipeRepository(db), mock
}

func soup() *models.Recipe {
	return &models.Recipe{
		ID:       "r1",
		Title:    "Soup",
		Steps:    []string{"Boil", "Serve"},
		Cuisine:  models.Italian,
		Type:     models.Veg,
		MealType: models.Dinner,
		Ingredients: []models.IngredientGroup{
			{Heading: "Base", Items: []string{"water", "salt"}},
			{Heading: "Garnish", Items: []string{"basil"}},
		},
		CreatedBy: "u1",
	}
}

func docOf(t *testing.T, r *models.Recipe) []byte {
	t.Helper()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	return b
}

func TestRecipeCreate(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	r := soup()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO recipes (id, title, created_by, doc) VALUES ($1, $2, $3, $4)`)).
		WithArgs("r1", "Soup", "u1", docOf(t, r)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), r))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeCreate_DuplicateTitle(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	mock.ExpectExec("INSERT INTO recipes").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "recipes_title_key"})

	err := repo.Create(context.Background(), soup())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeList_NoFilter(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	first, second := soup(), soup()
	second.ID, second.Title = "r2", "Stew"
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM recipes ORDER BY seq`)).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow(docOf(t, first)).
			AddRow(docOf(t, second)))

	got, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r2", got[1].ID)
	assert.Equal(t, first.Ingredients, got[0].Ingredients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeList_Filter(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM recipes WHERE doc @> $1::jsonb ORDER BY seq`)).
		WithArgs([]byte(`{"cuisine":"Italian","mealType":"Dinner"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	got, err := repo.List(context.Background(), map[string]string{"cuisine": "Italian", "mealType": "Dinner"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeListByOwner(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM recipes WHERE created_by = $1 ORDER BY seq`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(docOf(t, soup())))

	got, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeList_QueryError(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	mock.ExpectQuery("SELECT doc FROM recipes").WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeGet(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	want := soup()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM recipes WHERE id = $1`)).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(docOf(t, want)))

	got, err := repo.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeGet_NotFound(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM recipes WHERE id = $1`)).
		WithArgs("r9").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	_, err := repo.Get(context.Background(), "r9")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeOwner(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT created_by FROM recipes WHERE id = $1`)).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"created_by"}).AddRow("u1"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT created_by FROM recipes WHERE id = $1`)).
		WithArgs("r2").
		WillReturnRows(sqlmock.NewRows([]string{"created_by"}))

	owner, err := repo.Owner(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)

	_, err = repo.Owner(context.Background(), "r2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeReplace(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		err     error
		wantErr error
	}{
		{name: "updated", rows: 1},
		{name: "missing", rows: 0, wantErr: apperrors.ErrNotFound},
		{name: "duplicate title", err: &pq.Error{Code: "23505"}, wantErr: apperrors.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupRecipeMock(t)
			r := soup()
			exec := mock.ExpectExec(regexp.QuoteMeta(`UPDATE recipes SET title = $2, doc = $3 WHERE id = $1`)).
				WithArgs("r1", "Soup", docOf(t, r))
			if tt.err != nil {
				exec.WillReturnError(tt.err)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, tt.rows))
			}

			err := repo.Replace(context.Background(), r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecipeDelete(t *testing.T) {
	repo, mock := setupRecipeMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipes WHERE id = $1`)).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipes WHERE id = $1`)).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "r1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "r1"), apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
