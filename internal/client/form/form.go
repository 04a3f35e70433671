// Package form holds the client-side state of the recipe editor and turns
// it into the body sent to the create and update endpoints.
package form

import (
	"fmt"
	"strings"

	"github.com/atinyakov/RecipeShare/internal/models"
)

// Form is the editable state of one recipe.
type Form struct {
	Title       string
	Description string
	Image       string
	Cuisine     models.Cuisine
	Type        models.DietType
	MealType    models.MealType
	Steps       []string
	Ingredients []models.IngredientGroup
}

// New returns an empty form with the default classification and a single
// blank step.
func New() *Form {
	return &Form{
		Cuisine:     models.Indian,
		Type:        models.Veg,
		MealType:    models.Breakfast,
		Steps:       []string{""},
		Ingredients: []models.IngredientGroup{},
	}
}

// FromRecipe returns a form prefilled from an existing recipe, for editing.
func FromRecipe(r *models.Recipe) *Form {
	f := &Form{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Cuisine:     r.Cuisine,
		Type:        r.Type,
		MealType:    r.MealType,
		Steps:       append([]string{}, r.Steps...),
		Ingredients: make([]models.IngredientGroup, 0, len(r.Ingredients)),
	}
	for _, g := range r.Ingredients {
		f.Ingredients = append(f.Ingredients, models.IngredientGroup{
			Heading: g.Heading,
			Items:   append([]string{}, g.Items...),
		})
	}
	return f
}

// SetStep replaces the text of step i.
func (f *Form) SetStep(i int, text string) error {
	if i < 0 || i >= len(f.Steps) {
		return indexError("step", i, len(f.Steps))
	}
	f.Steps[i] = text
	return nil
}

// AddStep appends a blank step.
func (f *Form) AddStep() {
	f.Steps = append(f.Steps, "")
}

// RemoveStep deletes step i, keeping the order of the others.
func (f *Form) RemoveStep(i int) error {
	if i < 0 || i >= len(f.Steps) {
		return indexError("step", i, len(f.Steps))
	}
	f.Steps = append(f.Steps[:i], f.Steps[i+1:]...)
	return nil
}

// AddIngredientGroup appends a group with no heading and no items.
func (f *Form) AddIngredientGroup() {
	f.Ingredients = append(f.Ingredients, models.IngredientGroup{Items: []string{}})
}

// SetHeading replaces the heading of group i.
func (f *Form) SetHeading(i int, heading string) error {
	if i < 0 || i >= len(f.Ingredients) {
		return indexError("ingredient group", i, len(f.Ingredients))
	}
	f.Ingredients[i].Heading = heading
	return nil
}

// SetItems replaces the items of group i with the comma separated entries
// of list. Entries are trimmed and blank entries are dropped.
func (f *Form) SetItems(i int, list string) error {
	if i < 0 || i >= len(f.Ingredients) {
		return indexError("ingredient group", i, len(f.Ingredients))
	}
	f.Ingredients[i].Items = SplitItems(list)
	return nil
}

// RemoveIngredientGroup deletes group i.
func (f *Form) RemoveIngredientGroup(i int) error {
	if i < 0 || i >= len(f.Ingredients) {
		return indexError("ingredient group", i, len(f.Ingredients))
	}
	f.Ingredients = append(f.Ingredients[:i], f.Ingredients[i+1:]...)
	return nil
}

// Payload returns the submission body for the form. Slices are always
// non-nil so that the server sees arrays, not absent fields.
func (f *Form) Payload() models.RecipePayload {
	p := models.RecipePayload{
		Title:       f.Title,
		Description: f.Description,
		Image:       f.Image,
		Steps:       append([]string{}, f.Steps...),
		Cuisine:     f.Cuisine,
		Type:        f.Type,
		MealType:    f.MealType,
		Ingredients: make([]models.IngredientGroup, 0, len(f.Ingredients)),
	}
	for _, g := range f.Ingredients {
		items := append([]string{}, g.Items...)
		p.Ingredients = append(p.Ingredients, models.IngredientGroup{Heading: g.Heading, Items: items})
	}
	return p
}

// SplitItems splits a comma separated list into trimmed, non-blank items.
func SplitItems(list string) []string {
	items := []string{}
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func indexError(what string, i, n int) error {
	return fmt.Errorf("%s %d out of range (have %d)", what, i+1, n)
}
