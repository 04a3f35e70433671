package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/RecipeShare/internal/middleware"
	"github.com/atinyakov/RecipeShare/internal/models"
	"github.com/atinyakov/RecipeShare/internal/response"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecipeService defines the recipe operations required by RecipeHandler.
type RecipeService interface {
	Create(ctx context.Context, payload models.RecipePayload, ownerID string) (*models.Recipe, error)
	List(ctx context.Context, filter map[string]string) ([]models.Recipe, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error)
	Get(ctx context.Context, id string) (*models.Recipe, error)
	Update(ctx context.Context, id string, payload models.RecipePayload, principalID string) (*models.Recipe, error)
	Delete(ctx context.Context, id string, principalID string) error
}

// RecipeHandler handles the recipe endpoints.
type RecipeHandler struct {
	RecipeService RecipeService
	Logger        *zap.Logger
}

// Create handles POST /api/recipes/ and responds 201 with the stored recipe.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.RecipePayload
	if err := decodeRecipe(w, r, &payload); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	recipe, err := h.RecipeService.Create(r.Context(), payload, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	middleware.RecordRecipeMutation("create")
	response.Created(w, recipe)
}

// List handles GET /api/recipes/get. Every query parameter is an equality
// filter on the recipe attribute of the same name.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}

	recipes, err := h.RecipeService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	response.OK(w, recipes)
}

// Get handles GET /api/recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.RecipeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	response.OK(w, recipe)
}

// Update handles PUT /api/recipes/{id}, replacing the recipe wholesale.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload models.RecipePayload
	if err := decodeRecipe(w, r, &payload); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	recipe, err := h.RecipeService.Update(r.Context(), chi.URLParam(r, "id"), payload, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	middleware.RecordRecipeMutation("update")
	response.OK(w, recipe)
}

// Delete handles DELETE /api/recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.RecipeService.Delete(r.Context(), chi.URLParam(r, "id"), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	middleware.RecordRecipeMutation("delete")
	response.Message(w, http.StatusOK, "Recipe deleted successfully")
}

// Mine handles GET /api/my-recipes.
func (h *RecipeHandler) Mine(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.RecipeService.ListByOwner(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	response.OK(w, recipes)
}
