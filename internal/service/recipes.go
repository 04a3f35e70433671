package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/atinyakov/RecipeShare/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RecipeRepository defines the persistence operations needed by the RecipeService.
type RecipeRepository interface {
	// Create inserts a new recipe. A duplicate title yields apperrors.ErrConflict.
	Create(ctx context.Context, recipe *models.Recipe) error
	// List returns the recipes matching every attribute in filter.
	List(ctx context.Context, filter map[string]string) ([]models.Recipe, error)
	// ListByOwner returns the recipes created by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error)
	// Get returns one recipe or apperrors.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Recipe, error)
	// Owner returns the creator id of a recipe or apperrors.ErrNotFound.
	Owner(ctx context.Context, id string) (string, error)
	// Replace overwrites every mutable field of an existing recipe.
	Replace(ctx context.Context, recipe *models.Recipe) error
	// Delete removes a recipe or returns apperrors.ErrNotFound.
	Delete(ctx context.Context, id string) error
}

var (
	errRecipeID        = apperrors.ErrInvalidID.WithMessage("Invalid recipe ID format")
	errRecipeNotFound  = apperrors.ErrNotFound.WithMessage("Recipe not found")
	errEditForbidden   = apperrors.ErrForbidden.WithMessage("You are not authorized to edit this recipe")
	errDeleteForbidden = apperrors.ErrForbidden.WithMessage("You are not authorized to delete this recipe")
)

// Validation messages, in the order they are reported when several apply.
const (
	msgTitleSteps        = "Title and steps are required, and steps should be an array."
	msgClassRequired     = "Cuisine, type, and meal type are required."
	msgClassInvalid      = "Invalid cuisine, type, or meal type."
	msgIngredients       = "Ingredients must be structured with headings and items."
	msgDuplicateHeadings = "Ingredient headings must be unique."
)

// PayloadTypeError returns the validation error for a recipe payload whose
// JSON value at field has the wrong type. field is a dotted path such as
// "ingredients.items". It returns nil for fields it does not recognise.
func PayloadTypeError(field string) error {
	top, _, _ := strings.Cut(field, ".")
	switch top {
	case "title", "steps":
		return apperrors.ErrValidation.WithMessage(msgTitleSteps)
	case "cuisine", "type", "mealType":
		return apperrors.ErrValidation.WithMessage(msgClassInvalid)
	case "ingredients":
		return apperrors.ErrValidation.WithMessage(msgIngredients)
	}
	return nil
}

// RecipeService implements the recipe store operations.
type RecipeService struct {
	repo     RecipeRepository
	validate *validator.Validate
}

// NewRecipeService constructs a RecipeService with the provided RecipeRepository.
func NewRecipeService(repo RecipeRepository) *RecipeService {
	return &RecipeService{repo: repo, validate: validator.New()}
}

// Create validates payload and stores it as a new recipe owned by ownerID.
func (s *RecipeService) Create(ctx context.Context, payload models.RecipePayload, ownerID string) (*models.Recipe, error) {
	if err := s.check(&payload); err != nil {
		return nil, err
	}

	recipe := fromPayload(uuid.NewString(), ownerID, payload)
	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// List returns the recipes whose attributes equal every entry of filter.
func (s *RecipeService) List(ctx context.Context, filter map[string]string) ([]models.Recipe, error) {
	return s.repo.List(ctx, filter)
}

// ListByOwner returns the recipes created by ownerID.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns the recipe with the given id.
func (s *RecipeService) Get(ctx context.Context, id string) (*models.Recipe, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	recipe, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return recipe, nil
}

// Owner returns the id of the user who created the recipe.
func (s *RecipeService) Owner(ctx context.Context, id string) (string, error) {
	id, err := parseID(id)
	if err != nil {
		return "", err
	}
	owner, err := s.repo.Owner(ctx, id)
	if err != nil {
		return "", notFound(err)
	}
	return owner, nil
}

// Update replaces every mutable field of the recipe with payload. Only the
// creator may update a recipe; the creator reference itself never changes.
func (s *RecipeService) Update(ctx context.Context, id string, payload models.RecipePayload, principalID string) (*models.Recipe, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	owner, err := s.Owner(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner != principalID {
		return nil, errEditForbidden
	}

	if err := s.check(&payload); err != nil {
		return nil, err
	}

	recipe := fromPayload(id, owner, payload)
	if err := s.repo.Replace(ctx, recipe); err != nil {
		return nil, notFound(err)
	}
	return recipe, nil
}

// Delete removes the recipe. Only the creator may delete a recipe.
func (s *RecipeService) Delete(ctx context.Context, id string, principalID string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	owner, err := s.Owner(ctx, id)
	if err != nil {
		return err
	}
	if owner != principalID {
		return errDeleteForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	return nil
}

// check trims payload in place and validates it.
func (s *RecipeService) check(p *models.RecipePayload) error {
	normalize(p)

	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate recipe: %w", err)
	}

	order := []string{msgTitleSteps, msgClassRequired, msgClassInvalid, msgIngredients, msgDuplicateHeadings}
	best := len(order) - 1
	for _, fe := range fieldErrs {
		if rank := rankFieldError(fe); rank < best {
			best = rank
		}
	}
	return apperrors.ErrValidation.WithMessage(order[best])
}

func rankFieldError(fe validator.FieldError) int {
	switch fe.StructField() {
	case "Title", "Steps":
		return 0
	case "Cuisine", "Type", "MealType":
		if fe.Tag() == "required" {
			return 1
		}
		return 2
	case "Ingredients":
		if fe.Tag() == "unique" {
			return 4
		}
		return 3
	default:
		// Heading or Items of a group.
		return 3
	}
}

func normalize(p *models.RecipePayload) {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Image = strings.TrimSpace(p.Image)
	p.Cuisine = models.Cuisine(strings.TrimSpace(string(p.Cuisine)))
	p.Type = models.DietType(strings.TrimSpace(string(p.Type)))
	p.MealType = models.MealType(strings.TrimSpace(string(p.MealType)))
	for i := range p.Steps {
		p.Steps[i] = strings.TrimSpace(p.Steps[i])
	}
	for i := range p.Ingredients {
		g := &p.Ingredients[i]
		g.Heading = strings.TrimSpace(g.Heading)
		for j := range g.Items {
			g.Items[j] = strings.TrimSpace(g.Items[j])
		}
	}
}

func fromPayload(id, ownerID string, p models.RecipePayload) *models.Recipe {
	return &models.Recipe{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Steps:       p.Steps,
		Cuisine:     p.Cuisine,
		Type:        p.Type,
		MealType:    p.MealType,
		Ingredients: p.Ingredients,
		CreatedBy:   ownerID,
	}
}

// parseID returns id in canonical form.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", errRecipeID
	}
	return parsed.String(), nil
}

func notFound(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return errRecipeNotFound
	}
	return err
}
