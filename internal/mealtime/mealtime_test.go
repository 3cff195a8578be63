// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package mealtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/souschef/internal/souschefdb"
)

func TestMealAt(t *testing.T) {
	tests := []struct {
		hour int
		want souschefdb.MealType
	}{
		{hour: 0, want: souschefdb.MealTypeDinner},
		{hour: 4, want: souschefdb.MealTypeDinner},
		{hour: 5, want: souschefdb.MealTypeBreakfast},
		{hour: 11, want: souschefdb.MealTypeBreakfast},
		{hour: 12, want: souschefdb.MealTypeDinner},
		{hour: 13, want: souschefdb.MealTypeLunch},
		{hour: 16, want: souschefdb.MealTypeLunch},
		{hour: 17, want: souschefdb.MealTypeDinner},
		{hour: 23, want: souschefdb.MealTypeDinner},
	}
	for _, tc := range tests {
		at := time.Date(2026, time.October, 17, tc.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tc.want, MealAt(at), "hour %d", tc.hour)
	}
}

func TestParseMealType(t *testing.T) {
	tests := []struct {
		in   string
		want souschefdb.MealType
		ok   bool
	}{
		{in: "dinner", want: souschefdb.MealTypeDinner, ok: true},
		{in: " Dinner ", want: souschefdb.MealTypeDinner, ok: true},
		{in: "BREAKFAST", want: souschefdb.MealTypeBreakfast, ok: true},
		{in: "supper", want: souschefdb.MealTypeDinner, ok: true},
		{in: "lunch", want: souschefdb.MealTypeLunch, ok: true},
		{in: "snack", ok: false},
		{in: "", ok: false},
	}
	for _, tc := range tests {
		got, ok := ParseMealType(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestClock(t *testing.T) {
	c, err := NewClock("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", c.Now().Location().String())

	_, err = NewClock("Not/AZone")
	require.Error(t, err)

	// Saturday 23:00 UTC is Sunday 08:00 in Tokyo.
	at := time.Date(2026, time.October, 17, 23, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return at }
	assert.Equal(t, time.Sunday, c.Weekday())
	assert.Equal(t, souschefdb.MealTypeBreakfast, c.CurrentMeal())
	assert.Equal(t, "sunday", WeekdayKey(c.Weekday()))
}
