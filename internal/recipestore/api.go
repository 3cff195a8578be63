// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/curioswitch/souschef/internal/souschefdb"
)

const defaultMaxTries = 4

type apiStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

type apiInstructions struct {
	Name  string    `json:"name"`
	Steps []apiStep `json:"steps"`
}

type apiIngredients struct {
	ExtendedIngredients []souschefdb.Ingredient `json:"extendedIngredients"`
}

// NewAPI returns Content served by the recipe HTTP API at baseURL. Requests
// failing with a server error or a transport error are retried with exponential
// backoff.
func NewAPI(client *http.Client, baseURL string) *API {
	return &API{
		client:   client,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		maxTries: defaultMaxTries,
		backOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

type API struct {
	client   *http.Client
	baseURL  string
	maxTries uint
	backOff  func() backoff.BackOff
}

func (a *API) Steps(ctx context.Context, recipeID string) ([]souschefdb.Step, error) {
	var res []apiInstructions
	if err := a.get(ctx, "/api/v1/recipes/recipe_steps", recipeID, &res); err != nil {
		return nil, fmt.Errorf("recipestore: getting recipe steps: %w", err)
	}
	// Recipes without analyzed instructions return an empty list.
	if len(res) == 0 {
		return nil, nil
	}

	steps := make([]souschefdb.Step, len(res[0].Steps))
	for i, s := range res[0].Steps {
		steps[i] = souschefdb.Step{
			Number: s.Number,
			Text:   s.Step,
		}
	}
	return numberSteps(steps), nil
}

func (a *API) Ingredients(ctx context.Context, recipeID string) ([]souschefdb.Ingredient, error) {
	var res apiIngredients
	if err := a.get(ctx, "/api/v1/recipes/recipe_ingredients", recipeID, &res); err != nil {
		return nil, fmt.Errorf("recipestore: getting recipe ingredients: %w", err)
	}
	return res.ExtendedIngredients, nil
}

func (a *API) get(ctx context.Context, path string, recipeID string, dst any) error {
	u := a.baseURL + path + "?" + url.Values{"recipe_id": {recipeID}}.Encode()

	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		res, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("sending request: %w", err)
		}
		defer func() {
			_ = res.Body.Close()
		}()

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}

		switch {
		case res.StatusCode == http.StatusOK:
			return body, nil
		case res.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(ErrRecipeNotFound)
		case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError:
			return nil, fmt.Errorf("request failed with status %d: %s", res.StatusCode, body) //nolint:err113
		default:
			return nil, backoff.Permanent(fmt.Errorf("request failed with status %d: %s", res.StatusCode, body)) //nolint:err113
		}
	},
		backoff.WithBackOff(a.backOff()),
		backoff.WithMaxTries(a.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.WarnContext(ctx, "recipestore: retrying recipe API request", "path", path, "recipeId", recipeID, "error", err, "backoff", next)
		}),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
