// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"time"

	"github.com/curioswitch/go-curiostack/config"
)

type Skill struct {
	// DefaultUserID is the user whose plan and progress are used when the platform
	// does not send a user ID.
	DefaultUserID string `koanf:"defaultuserid"`

	// Timezone is the IANA timezone used to determine today's weekday and meal, e.g. Asia/Tokyo.
	Timezone string `koanf:"timezone"`
}

type Recipes struct {
	// APIURL is the base URL of the recipe API serving steps and ingredients, e.g.
	// https://souschef-182502.appspot.com. When empty, recipe content is read from Firestore.
	APIURL string `koanf:"apiurl"`

	// StepCacheTTL is how long fetched recipe steps are cached. Zero disables caching.
	StepCacheTTL time.Duration `koanf:"stepcachettl"`
}

type Config struct {
	config.Common

	// Skill is the configuration for the voice skill.
	Skill Skill `koanf:"skill"`

	// Recipes is the configuration for the recipe store.
	Recipes Recipes `koanf:"recipes"`
}
