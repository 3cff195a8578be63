// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package mealtime

import (
	"strings"
	"time"

	"github.com/curioswitch/souschef/internal/souschefdb"
)

// Clock returns the current time in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a Clock for the IANA timezone name. An empty name uses UTC.
func NewClock(timezone string) (*Clock, error) {
	loc := time.UTC
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, err
		}
		loc = l
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Now returns the current time in the clock's location.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Weekday returns today's weekday.
func (c *Clock) Weekday() time.Weekday {
	return c.Now().Weekday()
}

// CurrentMeal returns the meal usually cooked at the current time of day.
func (c *Clock) CurrentMeal() souschefdb.MealType {
	return MealAt(c.Now())
}

// MealAt returns the meal usually cooked at t. Early mornings through 11am are
// breakfast, 1pm through 4pm is lunch and everything else is dinner.
func MealAt(t time.Time) souschefdb.MealType {
	switch h := t.Hour(); {
	case h > 4 && h < 12:
		return souschefdb.MealTypeBreakfast
	case h > 12 && h < 17:
		return souschefdb.MealTypeLunch
	default:
		return souschefdb.MealTypeDinner
	}
}

// ParseMealType normalizes a spoken meal type slot value. It returns false if the
// value is not a known meal type.
func ParseMealType(s string) (souschefdb.MealType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast", "brunch":
		return souschefdb.MealTypeBreakfast, true
	case "lunch":
		return souschefdb.MealTypeLunch, true
	case "dinner", "supper":
		return souschefdb.MealTypeDinner, true
	}
	return "", false
}

// WeekdayKey returns the document key used for a weekday in a weekly plan.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}
