// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipestore

import (
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/curioswitch/souschef/internal/i18n"
	"github.com/curioswitch/souschef/internal/souschefdb"
)

type cachedSteps struct {
	steps   []souschefdb.Step
	expires time.Time
}

// NewCached returns Content that caches steps from content for ttl. Concurrent
// misses for the same recipe share a single fetch. Ingredients are not cached.
func NewCached(content Content, ttl time.Duration) *Cached {
	return &Cached{
		Content: content,
		ttl:     ttl,
		now:     time.Now,
		steps:   map[string]cachedSteps{},
	}
}

type Cached struct {
	Content

	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu    sync.Mutex
	steps map[string]cachedSteps
}

func (c *Cached) Steps(ctx context.Context, recipeID string) ([]souschefdb.Step, error) {
	// Localized recipes have different steps per language.
	key := i18n.UserLanguage(ctx) + "/" + recipeID

	if steps, ok := c.lookup(key); ok {
		return steps, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if steps, ok := c.lookup(key); ok {
			return steps, nil
		}
		steps, err := c.Content.Steps(ctx, recipeID)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.steps[key] = cachedSteps{
			steps:   steps,
			expires: c.now().Add(c.ttl),
		}
		c.mu.Unlock()
		return steps, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]souschefdb.Step)), nil //nolint:forcetypeassert
}

func (c *Cached) lookup(key string) ([]souschefdb.Step, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.steps[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.steps, key)
		return nil, false
	}
	return slices.Clone(e.steps), true
}
