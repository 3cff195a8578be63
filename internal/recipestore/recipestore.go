// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipestore

import (
	"context"
	"errors"
	"time"

	"github.com/curioswitch/souschef/internal/souschefdb"
)

var (
	// ErrRecipeNotFound is returned when a recipe ID does not exist.
	ErrRecipeNotFound = errors.New("recipestore: recipe not found")

	// ErrNoPlannedMeal is returned when a user has nothing planned for a meal.
	ErrNoPlannedMeal = errors.New("recipestore: no planned meal")
)

// Plans looks up the recipes users have planned for the week.
type Plans interface {
	// TodayRecipe returns the recipe the user planned for the meal on the weekday.
	TodayRecipe(ctx context.Context, userID string, weekday time.Weekday, meal souschefdb.MealType) (*souschefdb.PlannedMeal, error)
}

// Content returns the content of recipes.
type Content interface {
	// Steps returns the ordered steps of the recipe.
	Steps(ctx context.Context, recipeID string) ([]souschefdb.Step, error)

	// Ingredients returns the ingredients of the recipe.
	Ingredients(ctx context.Context, recipeID string) ([]souschefdb.Ingredient, error)
}

// Store is the full recipe store used by the skill.
type Store interface {
	Plans
	Content
}

// Composite serves plans and content from different backends.
type Composite struct {
	Plans
	Content
}

func numberSteps(steps []souschefdb.Step) []souschefdb.Step {
	for i := range steps {
		if steps[i].Number == 0 {
			steps[i].Number = i + 1
		}
	}
	return steps
}
