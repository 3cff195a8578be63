// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"

	"github.com/curioswitch/souschef/internal/config"
	"github.com/curioswitch/souschef/internal/handler/skill"
	"github.com/curioswitch/souschef/internal/i18n"
	"github.com/curioswitch/souschef/internal/mealtime"
	"github.com/curioswitch/souschef/internal/progressstore"
	"github.com/curioswitch/souschef/internal/recipestore"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	clock, err := mealtime.NewClock(conf.Skill.Timezone)
	if err != nil {
		return fmt.Errorf("main: load timezone: %w", err)
	}

	fsRecipes := recipestore.NewFirestore(firestore)
	recipes := recipestore.Composite{Plans: fsRecipes, Content: fsRecipes}
	if conf.Recipes.APIURL != "" {
		recipes.Content = recipestore.NewAPI(&http.Client{Timeout: 10 * time.Second}, conf.Recipes.APIURL)
	}
	if conf.Recipes.StepCacheTTL > 0 {
		recipes.Content = recipestore.NewCached(recipes.Content, conf.Recipes.StepCacheTTL)
	}
	slog.InfoContext(ctx, "main: recipe content configured", "apiUrl", conf.Recipes.APIURL, "stepCacheTTL", conf.Recipes.StepCacheTTL)

	mux.Use(i18n.Middleware())

	skill.NewHandler(recipes, progressstore.NewFirestore(firestore), clock, conf.Skill.DefaultUserID).Mount(mux)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
