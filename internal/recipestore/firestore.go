// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/curioswitch/souschef/internal/i18n"
	"github.com/curioswitch/souschef/internal/mealtime"
	"github.com/curioswitch/souschef/internal/souschefdb"
)

// NewFirestore returns a Store reading weekly plans and recipes from Firestore.
func NewFirestore(store *firestore.Client) *Firestore {
	return &Firestore{
		store: store,
	}
}

type Firestore struct {
	store *firestore.Client
}

func (f *Firestore) TodayRecipe(ctx context.Context, userID string, weekday time.Weekday, meal souschefdb.MealType) (*souschefdb.PlannedMeal, error) {
	doc, err := f.store.Collection("users").Doc(userID).
		Collection("weeklyPlan").Doc(mealtime.WeekdayKey(weekday)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNoPlannedMeal
		}
		return nil, fmt.Errorf("recipestore: getting weekly plan: %w", err)
	}

	var plan souschefdb.DayPlan
	if err := doc.DataTo(&plan); err != nil {
		return nil, fmt.Errorf("recipestore: unmarshalling weekly plan: %w", err)
	}

	planned := plan.Meal(meal)
	if planned == nil || planned.RecipeID == "" {
		return nil, ErrNoPlannedMeal
	}
	return planned, nil
}

func (f *Firestore) Steps(ctx context.Context, recipeID string) ([]souschefdb.Step, error) {
	cnt, err := f.content(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return numberSteps(cnt.Steps), nil
}

func (f *Firestore) Ingredients(ctx context.Context, recipeID string) ([]souschefdb.Ingredient, error) {
	cnt, err := f.content(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return cnt.Ingredients, nil
}

func (f *Firestore) content(ctx context.Context, recipeID string) (*souschefdb.RecipeContent, error) {
	doc, err := f.store.Collection("recipes").Where("id", "==", recipeID).Limit(1).Documents(ctx).Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("recipestore: getting recipe from firestore: %w", err)
	}

	var recipe souschefdb.Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("recipestore: unmarshalling recipe: %w", err)
	}

	cnt := recipe.LocalizedContent[i18n.UserLanguage(ctx)]
	if cnt == nil {
		cnt = &recipe.Content
	}
	return cnt, nil
}
