// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package progressstore

import (
	"context"
	"sync"

	"github.com/curioswitch/souschef/internal/souschefdb"
)

// NewMemory returns a Store keeping progress in memory, for tests and local runs.
func NewMemory() *Memory {
	return &Memory{
		progress: map[string]souschefdb.DurableProgress{},
	}
}

type Memory struct {
	mu       sync.Mutex
	progress map[string]souschefdb.DurableProgress
}

func (m *Memory) Get(_ context.Context, userID string) (*souschefdb.DurableProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.progress[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) Put(_ context.Context, userID string, recipeID string, step int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.progress[userID] = souschefdb.DurableProgress{
		RecipeID: recipeID,
		Step:     step,
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.progress, userID)
	return nil
}
