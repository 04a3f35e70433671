// Package models defines the core data structures for users and recipes.
package models

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"_id"`
	// Name is the unique display name chosen at signup.
	Name string `json:"name"`
	// Email is stored as entered; login lookups ignore letter case.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte `json:"-"`
	// CreatedRecipes holds references to recipes the user created.
	CreatedRecipes []string `json:"createdRecipes"`
	// SavedRecipes holds references to recipes the user bookmarked.
	SavedRecipes []string `json:"savedRecipes"`
}

// IngredientGroup is a named heading with an ordered list of items.
type IngredientGroup struct {
	Heading string   `json:"heading" validate:"required"`
	Items   []string `json:"items" validate:"required"`
}

// Recipe is a stored recipe document.
type Recipe struct {
	// ID is the unique identifier for the recipe.
	ID          string            `json:"_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Image       string            `json:"image,omitempty"`
	Steps       []string          `json:"steps"`
	Cuisine     Cuisine           `json:"cuisine"`
	Type        DietType          `json:"type"`
	MealType    MealType          `json:"mealType"`
	Ingredients []IngredientGroup `json:"ingredients"`
	// CreatedBy is the ID of the creating user. It never changes after creation.
	CreatedBy string `json:"createdBy"`
}

// RecipePayload is the body accepted by the create and update endpoints.
// A nil Ingredients or Items slice means the field was absent, which is
// distinct from an explicit empty array.
type RecipePayload struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description,omitempty"`
	Image       string            `json:"image,omitempty"`
	Steps       []string          `json:"steps" validate:"required,min=1"`
	Cuisine     Cuisine           `json:"cuisine" validate:"required,oneof=Indian Chinese Italian French Mexican"`
	Type        DietType          `json:"type" validate:"required,oneof=Veg Non-Veg Vegan"`
	MealType    MealType          `json:"mealType" validate:"required,oneof=Breakfast Lunch Dinner Dessert Snacks"`
	Ingredients []IngredientGroup `json:"ingredients" validate:"required,unique=Heading,dive"`
}

// Cuisine is one of the supported recipe cuisines.
type Cuisine string

const (
	Indian  Cuisine = "Indian"
	Chinese Cuisine = "Chinese"
	Italian Cuisine = "Italian"
	French  Cuisine = "French"
	Mexican Cuisine = "Mexican"
)

// DietType classifies a recipe by dietary restriction.
type DietType string

const (
	Veg    DietType = "Veg"
	NonVeg DietType = "Non-Veg"
	Vegan  DietType = "Vegan"
)

// MealType classifies a recipe by the meal it is meant for.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Dessert   MealType = "Dessert"
	Snacks    MealType = "Snacks"
)

// Cuisines lists every valid Cuisine in display order.
var Cuisines = []Cuisine{Indian, Chinese, Italian, French, Mexican}

// DietTypes lists every valid DietType in display order.
var DietTypes = []DietType{Veg, NonVeg, Vegan}

// MealTypes lists every valid MealType in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Dessert, Snacks}
