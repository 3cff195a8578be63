// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipestore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/curioswitch/souschef/internal/mealtime"
	"github.com/curioswitch/souschef/internal/souschefdb"
)

// NewMemory returns a Store serving recipes and plans kept in memory, for tests
// and local runs.
func NewMemory() *Memory {
	return &Memory{
		recipes: map[string]souschefdb.RecipeContent{},
		plans:   map[string]souschefdb.PlannedMeal{},
	}
}

type Memory struct {
	mu        sync.Mutex
	recipes   map[string]souschefdb.RecipeContent
	plans     map[string]souschefdb.PlannedMeal
	err       error
	stepCalls int
}

// AddRecipe stores the content of a recipe.
func (m *Memory) AddRecipe(recipeID string, content souschefdb.RecipeContent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes[recipeID] = content
}

// Plan schedules a recipe for a meal on a weekday.
func (m *Memory) Plan(userID string, weekday time.Weekday, meal souschefdb.MealType, planned souschefdb.PlannedMeal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[planKey(userID, weekday, meal)] = planned
}

// Fail makes every following call return err, or succeed again if err is nil.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// StepFetches returns the number of times steps have been fetched.
func (m *Memory) StepFetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stepCalls
}

func (m *Memory) TodayRecipe(_ context.Context, userID string, weekday time.Weekday, meal souschefdb.MealType) (*souschefdb.PlannedMeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.plans[planKey(userID, weekday, meal)]
	if !ok {
		return nil, ErrNoPlannedMeal
	}
	return &p, nil
}

func (m *Memory) Steps(_ context.Context, recipeID string) ([]souschefdb.Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stepCalls++
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.recipes[recipeID]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	return numberSteps(slices.Clone(r.Steps)), nil
}

func (m *Memory) Ingredients(_ context.Context, recipeID string) ([]souschefdb.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.recipes[recipeID]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	return slices.Clone(r.Ingredients), nil
}

func planKey(userID string, weekday time.Weekday, meal souschefdb.MealType) string {
	return userID + "/" + mealtime.WeekdayKey(weekday) + "/" + string(meal)
}
