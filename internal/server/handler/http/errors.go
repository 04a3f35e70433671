package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/atinyakov/RecipeShare/internal/models"
	"github.com/atinyakov/RecipeShare/internal/response"
	"github.com/atinyakov/RecipeShare/internal/service"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies accepted by the JSON handlers.
const maxBodyBytes = 1 << 20

var errBadBody = apperrors.ErrValidation.WithMessage("Invalid request body")

// decodeJSON decodes the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}

// decodeRecipe decodes a recipe payload. A value of the wrong JSON type is
// reported with the validation message of the field it belongs to.
func decodeRecipe(w http.ResponseWriter, r *http.Request, dst *models.RecipePayload) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if fieldErr := service.PayloadTypeError(typeErr.Field); fieldErr != nil {
			return fieldErr
		}
	}
	return errBadBody
}

// writeError reports err to the client. Server-side failures are logged
// with their details, which never reach the response.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	if apperrors.AsAPIError(err).StatusCode >= http.StatusInternalServerError {
		if logger == nil {
			logger = zap.NewNop()
		}
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	response.Error(w, err)
}
