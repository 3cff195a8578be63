// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package session decides where a user is in a recipe at the start of a turn.
//
// Progress lives in two places. Within a session, the platform carries it in the
// session attributes and returns them on every turn. Across sessions, it lives in
// the durable progress store. Exactly one of them is used for a turn: the session
// attributes if they hold a recipe, otherwise the durable progress. Fields are
// never merged from both.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/curioswitch/souschef/internal/alexa"
	"github.com/curioswitch/souschef/internal/progressstore"
	"github.com/curioswitch/souschef/internal/recipestore"
	"github.com/curioswitch/souschef/internal/souschefdb"
)

var (
	// ErrNoActiveRecipe is returned when the user is not cooking anything.
	ErrNoActiveRecipe = errors.New("no active recipe")

	// ErrDependencyUnavailable wraps failures of the recipe or progress stores.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Source is where resolved progress came from.
type Source int

const (
	// SourceSession is progress carried in the session attributes.
	SourceSession Source = iota + 1
	// SourceDurable is progress loaded from the durable store, with steps fetched again.
	SourceDurable
)

func (s Source) String() string {
	switch s {
	case SourceSession:
		return "session"
	case SourceDurable:
		return "durable"
	}
	return "unknown"
}

// State is the authoritative progress for a turn.
type State struct {
	Source   Source
	Progress souschefdb.Progress
}

// Attributes returns session attributes holding the state's progress.
func (s *State) Attributes() alexa.SessionAttributes {
	return alexa.AttributesFor(s.Progress)
}

func NewResolver(progress progressstore.Store, recipes recipestore.Content) *Resolver {
	return &Resolver{
		progress: progress,
		recipes:  recipes,
	}
}

// Resolver resolves the progress for a turn. It only reads; callers persist.
type Resolver struct {
	progress progressstore.Store
	recipes  recipestore.Content
}

// Resolve returns the user's progress, or ErrNoActiveRecipe if the user is not
// cooking. Store failures are wrapped with ErrDependencyUnavailable and are not retried.
func (r *Resolver) Resolve(ctx context.Context, userID string, attrs alexa.SessionAttributes) (*State, error) {
	if p, ok := attrs.Progress(); ok {
		return &State{
			Source:   SourceSession,
			Progress: p,
		}, nil
	}

	saved, err := r.progress.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("session: loading durable progress: %w: %w", ErrDependencyUnavailable, err)
	}
	if saved == nil {
		return nil, ErrNoActiveRecipe
	}

	steps, err := r.recipes.Steps(ctx, saved.RecipeID)
	if err != nil {
		if errors.Is(err, recipestore.ErrRecipeNotFound) {
			slog.WarnContext(ctx, "session: saved progress refers to missing recipe", "recipeId", saved.RecipeID)
			return nil, fmt.Errorf("session: recipe %s of saved progress: %w", saved.RecipeID, ErrNoActiveRecipe)
		}
		return nil, fmt.Errorf("session: fetching steps: %w: %w", ErrDependencyUnavailable, err)
	}

	return &State{
		Source: SourceDurable,
		Progress: souschefdb.Progress{
			RecipeID: saved.RecipeID,
			Steps:    steps,
			Step:     saved.Step,
		},
	}, nil
}
