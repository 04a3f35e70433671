package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"taxonomy", apperrors.ErrMissingToken, http.StatusUnauthorized, `{"message":"No token, authorization denied"}`},
		{"wrapped", fmt.Errorf("ctx: %w", apperrors.ErrNotFound.WithMessage("Recipe not found")), http.StatusNotFound, `{"message":"Recipe not found"}`},
		{"forbidden is 401", apperrors.ErrForbidden, http.StatusUnauthorized, `{"message":"You are not authorized to perform this action"}`},
		{"unknown error hides details", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"message":"Server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"token": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"token":"abc"}`, rec.Body.String())
}
