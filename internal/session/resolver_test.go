// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/souschef/internal/alexa"
	"github.com/curioswitch/souschef/internal/progressstore"
	"github.com/curioswitch/souschef/internal/recipestore"
	"github.com/curioswitch/souschef/internal/souschefdb"
)

var (
	pastaSteps = []souschefdb.Step{
		{Number: 1, Text: "Boil water."},
		{Number: 2, Text: "Add pasta."},
		{Number: 3, Text: "Drain."},
	}
	currySteps = []souschefdb.Step{
		{Number: 1, Text: "Fry onions."},
		{Number: 2, Text: "Add roux."},
	}
)

type failingProgress struct {
	progressstore.Store
	err error
}

func (f failingProgress) Get(context.Context, string) (*souschefdb.DurableProgress, error) {
	return nil, f.err
}

func newStores(t *testing.T) (*progressstore.Memory, *recipestore.Memory) {
	t.Helper()
	recipes := recipestore.NewMemory()
	recipes.AddRecipe("pasta", souschefdb.RecipeContent{Title: "Pasta", Steps: pastaSteps})
	recipes.AddRecipe("curry", souschefdb.RecipeContent{Title: "Curry", Steps: currySteps})
	return progressstore.NewMemory(), recipes
}

func TestResolveSessionAttributes(t *testing.T) {
	ctx := context.Background()
	progress, recipes := newStores(t)
	r := NewResolver(progress, recipes)

	attrs := alexa.SessionAttributes{RecipeID: "pasta", Steps: pastaSteps, Step: 2}
	state, err := r.Resolve(ctx, "u1", attrs)
	require.NoError(t, err)
	assert.Equal(t, SourceSession, state.Source)
	assert.Equal(t, souschefdb.Progress{RecipeID: "pasta", Steps: pastaSteps, Step: 2}, state.Progress)
	assert.Equal(t, attrs, state.Attributes())
	assert.Zero(t, recipes.StepFetches())
}

func TestResolveSessionWinsOverDurable(t *testing.T) {
	ctx := context.Background()
	progress, recipes := newStores(t)
	require.NoError(t, progress.Put(ctx, "u1", "curry", 1))
	r := NewResolver(progress, recipes)

	// Session steps intentionally differ from the store to prove they are not re-fetched.
	sessionSteps := []souschefdb.Step{{Number: 1, Text: "From session."}}
	state, err := r.Resolve(ctx, "u1", alexa.SessionAttributes{RecipeID: "pasta", Steps: sessionSteps, Step: 0})
	require.NoError(t, err)
	assert.Equal(t, SourceSession, state.Source)
	assert.Equal(t, "pasta", state.Progress.RecipeID)
	assert.Equal(t, sessionSteps, state.Progress.Steps)
	assert.Equal(t, 0, state.Progress.Step)
	assert.Zero(t, recipes.StepFetches())
}

func TestResolveSessionWinsWhenDurableUnavailable(t *testing.T) {
	_, recipes := newStores(t)
	r := NewResolver(failingProgress{err: errors.New("firestore down")}, recipes)

	state, err := r.Resolve(context.Background(), "u1", alexa.SessionAttributes{RecipeID: "pasta", Steps: pastaSteps, Step: 1})
	require.NoError(t, err)
	assert.Equal(t, SourceSession, state.Source)
}

func TestResolveDurable(t *testing.T) {
	ctx := context.Background()
	progress, recipes := newStores(t)
	require.NoError(t, progress.Put(ctx, "u1", "curry", 1))
	r := NewResolver(progress, recipes)

	state, err := r.Resolve(ctx, "u1", alexa.SessionAttributes{})
	require.NoError(t, err)
	assert.Equal(t, SourceDurable, state.Source)
	assert.Equal(t, souschefdb.Progress{RecipeID: "curry", Steps: currySteps, Step: 1}, state.Progress)
	assert.Equal(t, 1, recipes.StepFetches())

	// Resolving does not modify the durable record.
	saved, err := progress.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Step)
}

func TestResolveEmptyAttributesIgnoreStaleStep(t *testing.T) {
	ctx := context.Background()
	progress, recipes := newStores(t)
	require.NoError(t, progress.Put(ctx, "u1", "curry", 0))
	r := NewResolver(progress, recipes)

	// A step without a recipe ID is not a session state, so nothing is merged from it.
	state, err := r.Resolve(ctx, "u1", alexa.SessionAttributes{Step: 5})
	require.NoError(t, err)
	assert.Equal(t, SourceDurable, state.Source)
	assert.Equal(t, 0, state.Progress.Step)
}

func TestResolveNoActiveRecipe(t *testing.T) {
	progress, recipes := newStores(t)
	r := NewResolver(progress, recipes)

	_, err := r.Resolve(context.Background(), "u1", alexa.SessionAttributes{})
	require.ErrorIs(t, err, ErrNoActiveRecipe)
	assert.Zero(t, recipes.StepFetches())
}

func TestResolveMissingRecipe(t *testing.T) {
	ctx := context.Background()
	progress, recipes := newStores(t)
	require.NoError(t, progress.Put(ctx, "u1", "deleted", 2))
	r := NewResolver(progress, recipes)

	_, err := r.Resolve(ctx, "u1", alexa.SessionAttributes{})
	require.ErrorIs(t, err, ErrNoActiveRecipe)
}

func TestResolveDependencyUnavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("progress store", func(t *testing.T) {
		_, recipes := newStores(t)
		r := NewResolver(failingProgress{err: errors.New("firestore down")}, recipes)

		_, err := r.Resolve(ctx, "u1", alexa.SessionAttributes{})
		require.ErrorIs(t, err, ErrDependencyUnavailable)
		assert.ErrorContains(t, err, "firestore down")
	})

	t.Run("recipe store", func(t *testing.T) {
		progress, recipes := newStores(t)
		require.NoError(t, progress.Put(ctx, "u1", "pasta", 1))
		recipes.Fail(errors.New("api down"))
		r := NewResolver(progress, recipes)

		_, err := r.Resolve(ctx, "u1", alexa.SessionAttributes{})
		require.ErrorIs(t, err, ErrDependencyUnavailable)
		assert.NotErrorIs(t, err, ErrNoActiveRecipe)
	})
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "session", SourceSession.String())
	assert.Equal(t, "durable", SourceDurable.String())
	assert.Equal(t, "unknown", Source(0).String())
}
