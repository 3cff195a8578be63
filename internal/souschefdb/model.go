// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package souschefdb

import "time"

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// AllMealTypes lists the meal types a weekly plan can hold, in the order of the day.
var AllMealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}

// Step represents a single instruction in a recipe.
type Step struct {
	// Number is the 1-based number of the step, used when speaking it.
	Number int `firestore:"number" json:"number"`

	// Text is the instruction text of the step.
	Text string `firestore:"text" json:"text"`
}

// Ingredient represents an ingredient in a recipe.
type Ingredient struct {
	// OriginalString is the ingredient as written in the recipe, e.g. "2 cups flour".
	OriginalString string `firestore:"originalString" json:"originalString"`
}

// RecipeContent is the speakable content of a recipe.
type RecipeContent struct {
	// Title is the title of the recipe.
	Title string `firestore:"title"`

	// Ingredients are the ingredients of the recipe.
	Ingredients []Ingredient `firestore:"ingredients"`

	// Steps are the steps to prepare the recipe.
	Steps []Step `firestore:"steps"`
}

// Recipe represents a recipe stored in Firestore.
type Recipe struct {
	// ID is the unique identifier of the recipe.
	ID string `firestore:"id"`

	// LanguageCode is the source language code of the recipe, e.g. "en".
	LanguageCode string `firestore:"languageCode"`

	// Content is the content of the recipe in its source language.
	Content RecipeContent `firestore:"content"`

	// LocalizedContent contains localized content for the recipe keyed by language code.
	LocalizedContent map[string]*RecipeContent `firestore:"localizedContent,omitempty"`
}

// PlannedMeal is a recipe scheduled for a meal in a user's weekly plan.
type PlannedMeal struct {
	// RecipeID is the ID of the planned recipe.
	RecipeID string `firestore:"id"`

	// Name is the name of the planned recipe as it should be spoken.
	Name string `firestore:"name"`
}

// DayPlan is the plan for one weekday. Day plans are stored in the weeklyPlan
// collection for a user, with the lowercase weekday name as the ID.
type DayPlan struct {
	Breakfast *PlannedMeal `firestore:"breakfast,omitempty"`
	Lunch     *PlannedMeal `firestore:"lunch,omitempty"`
	Dinner    *PlannedMeal `firestore:"dinner,omitempty"`
}

// Meal returns the planned meal for the meal type, or nil if none is planned.
func (p *DayPlan) Meal(t MealType) *PlannedMeal {
	switch t {
	case MealTypeBreakfast:
		return p.Breakfast
	case MealTypeLunch:
		return p.Lunch
	case MealTypeDinner:
		return p.Dinner
	}
	return nil
}

// Progress is a user's position within a recipe. Step is the index of the next
// step to speak, with len(Steps) meaning the recipe is complete.
type Progress struct {
	RecipeID string
	Steps    []Step
	Step     int
}

// Complete returns whether every step of the recipe has been spoken.
func (p *Progress) Complete() bool {
	return p.Step >= len(p.Steps)
}

// DurableProgress is the persisted form of Progress. Steps are never stored and
// are fetched again from the recipe store on resume.
type DurableProgress struct {
	// RecipeID is the ID of the recipe being cooked.
	RecipeID string `firestore:"recipeId"`

	// Step is the index of the next step to speak.
	Step int `firestore:"step"`

	// UpdatedAt is the time the progress was last saved.
	UpdatedAt time.Time `firestore:"updatedAt"`
}
