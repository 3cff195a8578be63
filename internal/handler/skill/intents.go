// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package skill

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/curioswitch/souschef/internal/alexa"
	"github.com/curioswitch/souschef/internal/mealtime"
	"github.com/curioswitch/souschef/internal/navigator"
	"github.com/curioswitch/souschef/internal/recipestore"
	"github.com/curioswitch/souschef/internal/session"
	"github.com/curioswitch/souschef/internal/souschefdb"
)

const slotMealType = "MealType"

// welcome greets the user without touching progress held in the session.
func (h *Handler) welcome(_ context.Context, t *turn) (*alexa.ResponseEnvelope, error) {
	return alexa.Reply(t.attributes(), welcomeSpeech()), nil
}

func (h *Handler) startCooking(ctx context.Context, t *turn) (*alexa.ResponseEnvelope, error) {
	meal, ok := mealtime.ParseMealType(t.req.Request.Intent.SlotValue(slotMealType))
	if !ok {
		slog.InfoContext(ctx, "skill: reprompting for meal type", "error", ErrMissingSlot, "value", t.req.Request.Intent.SlotValue(slotMealType))
		return alexa.Reply(t.attributes(), askMealSpeech(h.clock.CurrentMeal())), nil
	}

	planned, err := h.recipes.TodayRecipe(ctx, t.userID, h.clock.Weekday(), meal)
	if err != nil {
		if errors.Is(err, recipestore.ErrNoPlannedMeal) {
			return alexa.Reply(t.attributes(), nothingPlannedSpeech(meal)), nil
		}
		return nil, unavailable("getting today's recipe", err)
	}

	steps, err := h.recipes.Steps(ctx, planned.RecipeID)
	if err != nil {
		return nil, unavailable("getting recipe steps", err)
	}

	// Save right away so the recipe can be resumed even if the session ends before the first step.
	if err := h.progress.Put(ctx, t.userID, planned.RecipeID, 0); err != nil {
		return nil, unavailable("saving progress", err)
	}

	attrs := alexa.AttributesFor(souschefdb.Progress{
		RecipeID: planned.RecipeID,
		Steps:    steps,
		Step:     0,
	})
	return alexa.Reply(attrs, startSpeech(meal, planned.Name)), nil
}

func (h *Handler) nextStep(ctx context.Context, t *turn) (*alexa.ResponseEnvelope, error) {
	state, res, err := h.resolve(ctx, t)
	if state == nil {
		return res, err
	}

	p := state.Progress
	mv, err := navigator.Advance(p.Steps, p.Step)
	if errors.Is(err, navigator.ErrRecipeComplete) {
		if err := h.finish(ctx, t); err != nil {
			return nil, err
		}
		return alexa.Reply(alexa.SessionAttributes{}, recipeEndSpeech()), nil
	}

	if mv.Next >= len(p.Steps) {
		if err := h.finish(ctx, t); err != nil {
			return nil, err
		}
		return alexa.Reply(alexa.SessionAttributes{}, lastStepSpeech(mv.Speech)), nil
	}

	p.Step = mv.Next
	return alexa.Reply(alexa.AttributesFor(p), stepSpeech(mv.Speech)), nil
}

func (h *Handler) repeatStep(ctx context.Context, t *turn) (*alexa.ResponseEnvelope, error) {
	return h.navigate(ctx, t, navigator.Repeat)
}

func (h *Handler) previousStep(ctx context.Context, t *turn) (*alexa.ResponseEnvelope, error) {
	return h.navigate(ctx, t, navigator.Previous)
}

func (h *Handler) navigate(ctx context.Context, t *turn, move func([]souschefdb.Step, int) (navigator.Move, error)) (*alexa.ResponseEnvelope, error) {
	state, res, err := h.resolve(ctx, t)
	if state == nil {
		return res, err
	}

	p := state.Progress
	mv, err := move(p.Steps, p.Step)
	if err != nil {
		// Only ErrNoSteps is possible.
		return alexa.Reply(state.Attributes(), noStepsSpeech()), nil
	}

	p.Step = mv.Next
	return alexa.Reply(alexa.AttributesFor(p), stepSpeech(mv.Speech)), nil
}

func (h *Handler) ingredientList(ctx context.Context, t *turn) (*alexa.ResponseEnvelope, error) {
	state, res, err := h.resolve(ctx, t)
	if state == nil {
		return res, err
	}

	ings, err := h.recipes.Ingredients(ctx, state.Progress.RecipeID)
	if err != nil {
		return nil, unavailable("getting ingredients", err)
	}
	if len(ings) == 0 {
		return alexa.Reply(state.Attributes(), noIngredientsSpeech()), nil
	}

	names := make([]string, len(ings))
	for i, ing := range ings {
		names[i] = ing.OriginalString
	}
	return alexa.Reply(state.Attributes(), ingredientsSpeech(strings.Join(names, ", "))), nil
}

func (h *Handler) stop(ctx context.Context, t *turn) (*alexa.ResponseEnvelope, error) {
	saved, err := h.saveSession(ctx, t)
	if err != nil {
		return nil, err
	}
	if !saved {
		return alexa.Reply(alexa.SessionAttributes{}, goodbyeSpeech()), nil
	}
	return alexa.Reply(alexa.SessionAttributes{}, progressSavedSpeech()), nil
}

// sessionEnded saves progress when the session ends without the user asking to
// stop, such as when they stop answering.
func (h *Handler) sessionEnded(ctx context.Context, t *turn) (*alexa.ResponseEnvelope, error) {
	slog.InfoContext(ctx, "skill: session ended", "requestId", t.req.Request.RequestID, "sessionId", t.req.Session.SessionID, "reason", t.req.Request.Reason)
	if _, err := h.saveSession(ctx, t); err != nil {
		return nil, err
	}
	return alexa.Silent(), nil
}

// resolve returns the state for the turn. If there is no state, it returns the
// reply or error the intent should return instead.
func (h *Handler) resolve(ctx context.Context, t *turn) (*session.State, *alexa.ResponseEnvelope, error) {
	state, err := h.resolver.Resolve(ctx, t.userID, t.attributes())
	if err != nil {
		if errors.Is(err, session.ErrNoActiveRecipe) {
			return nil, alexa.Reply(alexa.SessionAttributes{}, noRecipeSpeech()), nil
		}
		return nil, nil, err
	}
	return state, nil, nil
}

// saveSession copies progress held by the session to the durable store. It
// returns false if the session holds no progress.
func (h *Handler) saveSession(ctx context.Context, t *turn) (bool, error) {
	p, ok := t.attributes().Progress()
	if !ok {
		return false, nil
	}
	if err := h.progress.Put(ctx, t.userID, p.RecipeID, navigator.Clamp(p.Steps, p.Step)); err != nil {
		return false, unavailable("saving progress", err)
	}
	return true, nil
}

func (h *Handler) finish(ctx context.Context, t *turn) error {
	if err := h.progress.Delete(ctx, t.userID); err != nil {
		return unavailable("deleting progress", err)
	}
	return nil
}
