// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package skill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/curioswitch/souschef/internal/alexa"
	"github.com/curioswitch/souschef/internal/i18n"
	"github.com/curioswitch/souschef/internal/mealtime"
	"github.com/curioswitch/souschef/internal/progressstore"
	"github.com/curioswitch/souschef/internal/recipestore"
	"github.com/curioswitch/souschef/internal/session"
)

// HandleTurnProcedure is the path the platform posts turns to.
const HandleTurnProcedure = "/souschef.skill.v1.SkillService/HandleTurn"

var (
	// ErrInvalidIntent is returned for intents and request types the skill does not handle.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrMissingSlot is logged when an intent arrives without a required slot.
	ErrMissingSlot = errors.New("missing slot")
)

type turn struct {
	userID string
	req    *alexa.RequestEnvelope
}

func (t *turn) attributes() alexa.SessionAttributes {
	return t.req.Session.Attributes
}

type intentHandler func(ctx context.Context, t *turn) (*alexa.ResponseEnvelope, error)

func NewHandler(recipes recipestore.Store, progress progressstore.Store, clock *mealtime.Clock, defaultUserID string) *Handler {
	h := &Handler{
		recipes:       recipes,
		progress:      progress,
		resolver:      session.NewResolver(progress, recipes),
		clock:         clock,
		defaultUserID: defaultUserID,
	}
	h.intents = map[string]intentHandler{
		"StartCookingIntent":    h.startCooking,
		"NextStepIntent":        h.nextStep,
		"AMAZON.NextIntent":     h.nextStep,
		"RepeatStepIntent":      h.repeatStep,
		"AMAZON.RepeatIntent":   h.repeatStep,
		"PreviousStepIntent":    h.previousStep,
		"AMAZON.PreviousIntent": h.previousStep,
		"IngredientListIntent":  h.ingredientList,
		"AMAZON.HelpIntent":     h.welcome,
		"AMAZON.CancelIntent":   h.stop,
		"AMAZON.StopIntent":     h.stop,
	}
	return h
}

// Handler handles turns of the voice skill.
type Handler struct {
	recipes       recipestore.Store
	progress      progressstore.Store
	resolver      *session.Resolver
	clock         *mealtime.Clock
	defaultUserID string
	intents       map[string]intentHandler
}

// Mount registers the turn endpoint on the router.
func (h *Handler) Mount(r chi.Router) {
	r.With(middleware.AllowContentType("application/json")).Handle(HandleTurnProcedure,
		connect.NewUnaryHandler(HandleTurnProcedure, h.handleTurnConnect, connect.WithCodec(alexa.JSONCodec{})))
}

func (h *Handler) handleTurnConnect(ctx context.Context, req *connect.Request[alexa.RequestEnvelope]) (*connect.Response[alexa.ResponseEnvelope], error) {
	res, err := h.HandleTurn(ctx, req.Msg)
	if err != nil {
		slog.ErrorContext(ctx, "skill: handling turn", "requestId", req.Msg.Request.RequestID, "error", err)
		switch {
		case errors.Is(err, ErrInvalidIntent):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		case errors.Is(err, session.ErrDependencyUnavailable):
			return nil, connect.NewError(connect.CodeUnavailable, err)
		default:
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}
	return connect.NewResponse(res), nil
}

// HandleTurn handles one request from the platform and returns the reply.
func (h *Handler) HandleTurn(ctx context.Context, req *alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
	ctx = i18n.WithLocale(ctx, req.Request.Locale)

	t := &turn{
		userID: req.Session.User.UserID,
		req:    req,
	}
	if t.userID == "" {
		t.userID = h.defaultUserID
	}

	if req.Session.New {
		slog.InfoContext(ctx, "skill: session started", "requestId", req.Request.RequestID, "sessionId", req.Session.SessionID)
	}

	switch req.Request.Type {
	case alexa.RequestTypeLaunch:
		return h.welcome(ctx, t)
	case alexa.RequestTypeIntent:
		if req.Request.Intent == nil {
			return nil, fmt.Errorf("skill: intent request without intent: %w", ErrInvalidIntent)
		}
		handle, ok := h.intents[req.Request.Intent.Name]
		if !ok {
			return nil, fmt.Errorf("skill: intent %q: %w", req.Request.Intent.Name, ErrInvalidIntent)
		}
		return handle(ctx, t)
	case alexa.RequestTypeSessionEnded:
		return h.sessionEnded(ctx, t)
	}
	return nil, fmt.Errorf("skill: request type %q: %w", req.Request.Type, ErrInvalidIntent)
}

func unavailable(action string, err error) error {
	return fmt.Errorf("skill: %s: %w: %w", action, session.ErrDependencyUnavailable, err)
}
