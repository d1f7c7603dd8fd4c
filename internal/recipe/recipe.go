// Copyright (c) 2026 Savora. All rights reserved.

package recipe

import "time"

// # Field Names

const (
	FieldTitle       = "title"
	FieldImage       = "image"
	FieldDescription = "description"
	FieldSteps       = "steps"
	FieldIngredients = "ingredients"
	FieldCookingTime = "cookingTime"
)

// # Entity

// Step is one ordered instruction in a recipe.
type Step struct {
	StepNum     int    `json:"stepNum"`
	StepContent string `json:"stepContent"`
}

// Ingredient is one named ingredient with a free-form quantity
// ("2 eggs", "a pinch").
type Ingredient struct {
	IngredientName string `json:"ingredientName"`
	IngredientQty  string `json:"ingredientQty"`
}

// Owner is the public slice of the owning account embedded in listings.
type Owner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Recipe is a member-authored recipe. The owner is fixed at creation and
// never changes, even when an admin edits the recipe.
type Recipe struct {
	ID          string       `json:"id"`
	Owner       Owner        `json:"user"`
	Title       string       `json:"title"`
	ImageURL    string       `json:"image"`
	Description string       `json:"description"`
	Steps       []Step       `json:"steps"`
	Ingredients []Ingredient `json:"ingredients"`
	CookingTime string       `json:"cookingTime"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
