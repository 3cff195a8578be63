// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package progressstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/curioswitch/souschef/internal/souschefdb"
)

// Store persists a user's progress through a recipe between sessions.
type Store interface {
	// Get returns the user's saved progress, or nil if there is none.
	Get(ctx context.Context, userID string) (*souschefdb.DurableProgress, error)

	// Put saves the user's progress, replacing any existing progress.
	Put(ctx context.Context, userID string, recipeID string, step int) error

	// Delete removes the user's progress. Deleting missing progress is not an error.
	Delete(ctx context.Context, userID string) error
}

// NewFirestore returns a Store saving progress to the progress collection, with
// the user ID as the document ID.
func NewFirestore(store *firestore.Client) *Firestore {
	return &Firestore{
		store: store,
		now:   time.Now,
	}
}

type Firestore struct {
	store *firestore.Client
	now   func() time.Time
}

func (f *Firestore) Get(ctx context.Context, userID string) (*souschefdb.DurableProgress, error) {
	doc, err := f.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("progressstore: getting progress: %w", err)
	}

	var progress souschefdb.DurableProgress
	if err := doc.DataTo(&progress); err != nil {
		return nil, fmt.Errorf("progressstore: unmarshalling progress: %w", err)
	}
	if progress.RecipeID == "" {
		return nil, nil
	}
	return &progress, nil
}

func (f *Firestore) Put(ctx context.Context, userID string, recipeID string, step int) error {
	progress := souschefdb.DurableProgress{
		RecipeID:  recipeID,
		Step:      step,
		UpdatedAt: f.now(),
	}
	if _, err := f.doc(userID).Set(ctx, progress); err != nil {
		return fmt.Errorf("progressstore: saving progress: %w", err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, userID string) error {
	if _, err := f.doc(userID).Delete(ctx); err != nil {
		return fmt.Errorf("progressstore: deleting progress: %w", err)
	}
	return nil
}

func (f *Firestore) doc(userID string) *firestore.DocumentRef {
	return f.store.Collection("progress").Doc(userID)
}
