// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package navigator moves a cursor through the steps of a recipe. The cursor
// always points at the next step that has not been spoken yet, so a step is
// consumed when it is spoken and the cursor moves past it.
package navigator

import (
	"errors"
	"fmt"

	"github.com/curioswitch/souschef/internal/souschefdb"
)

var (
	// ErrRecipeComplete is returned when advancing past the last step.
	ErrRecipeComplete = errors.New("navigator: recipe complete")

	// ErrNoSteps is returned when going back within a recipe without steps.
	ErrNoSteps = errors.New("navigator: recipe has no steps")
)

// Move is the result of navigating: the text to speak and the new cursor.
type Move struct {
	// Speech is the rendered step that was spoken.
	Speech string

	// Next is the index of the next step to speak after this move.
	Next int
}

// Render formats a step for speaking.
func Render(step souschefdb.Step) string {
	return fmt.Sprintf("Step %d. %s", step.Number, step.Text)
}

// Advance speaks the step at the cursor and moves the cursor past it.
func Advance(steps []souschefdb.Step, idx int) (Move, error) {
	idx = Clamp(steps, idx)
	if idx >= len(steps) {
		return Move{}, ErrRecipeComplete
	}
	return speak(steps, idx), nil
}

// Repeat speaks the most recently spoken step again, or the first step if none
// has been spoken. The cursor ends up after the repeated step.
func Repeat(steps []souschefdb.Step, idx int) (Move, error) {
	if len(steps) == 0 {
		return Move{}, ErrNoSteps
	}
	return speak(steps, max(Clamp(steps, idx)-1, 0)), nil
}

// Previous goes back to the step before the most recently spoken one and speaks
// it, stopping at the first step.
func Previous(steps []souschefdb.Step, idx int) (Move, error) {
	if len(steps) == 0 {
		return Move{}, ErrNoSteps
	}
	return speak(steps, max(Clamp(steps, idx)-2, 0)), nil
}

// Clamp limits a cursor that may have been tampered with to [0, len(steps)].
func Clamp(steps []souschefdb.Step, idx int) int {
	return min(max(idx, 0), len(steps))
}

func speak(steps []souschefdb.Step, i int) Move {
	return Move{
		Speech: Render(steps[i]),
		Next:   i + 1,
	}
}
