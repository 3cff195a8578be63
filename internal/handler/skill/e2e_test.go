// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package skill

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/souschef/internal/alexa"
)

func newServer(t *testing.T) (*fixture, *httptest.Server) {
	t.Helper()
	f := newFixture(t)

	r := chi.NewRouter()
	f.handler.Mount(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return f, srv
}

func post(t *testing.T, srv *httptest.Server, body string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+HandleTurnProcedure, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, b
}

func postTurn(t *testing.T, srv *httptest.Server, body string) *alexa.ResponseEnvelope {
	t.Helper()

	code, b := post(t, srv, body)
	require.Equal(t, http.StatusOK, code, string(b))

	var res alexa.ResponseEnvelope
	require.NoError(t, json.Unmarshal(b, &res))
	return &res
}

func assertGolden(t *testing.T, name string, body []byte) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.Indent(&buf, bytes.TrimSpace(body), "", "  "))

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, name, buf.Bytes())
}

func intentBody(name string, attrs string) string {
	return `{
  "version": "1.0",
  "session": {
    "new": false,
    "sessionId": "amzn1.echo-api.session.1",
    "application": {"applicationId": "amzn1.ask.skill.1"},
    "attributes": ` + attrs + `,
    "user": {"userId": ""}
  },
  "request": {
    "type": "IntentRequest",
    "requestId": "amzn1.echo-api.request.2",
    "timestamp": "2026-10-17T18:00:00Z",
    "locale": "en-US",
    "intent": {"name": "` + name + `", "slots": {"MealType": {"name": "MealType", "value": "dinner"}}}
  }
}`
}

const launchBody = `{
  "version": "1.0",
  "session": {
    "new": true,
    "sessionId": "amzn1.echo-api.session.1",
    "application": {"applicationId": "amzn1.ask.skill.1"},
    "user": {"userId": ""}
  },
  "request": {
    "type": "LaunchRequest",
    "requestId": "amzn1.echo-api.request.1",
    "timestamp": "2026-10-17T18:00:00Z",
    "locale": "en-US"
  }
}`

func TestLaunchOverHTTP(t *testing.T) {
	_, srv := newServer(t)

	code, body := post(t, srv, launchBody)
	require.Equal(t, http.StatusOK, code, string(body))
	assertGolden(t, "launch", body)
}

func TestCookingSessionOverHTTP(t *testing.T) {
	f, srv := newServer(t)

	res := postTurn(t, srv, intentBody("StartCookingIntent", "{}"))
	assert.Contains(t, res.Response.OutputSpeech.Text, pastaName)
	assert.Equal(t, 0, res.SessionAttributes.Step)

	attrs, err := json.Marshal(res.SessionAttributes)
	require.NoError(t, err)

	res = postTurn(t, srv, intentBody("NextStepIntent", string(attrs)))
	assert.Equal(t, "Step 1. Boil the water.", res.Response.OutputSpeech.Text)
	assert.Equal(t, 1, res.SessionAttributes.Step)

	attrs, err = json.Marshal(res.SessionAttributes)
	require.NoError(t, err)
	res = postTurn(t, srv, intentBody("NextStepIntent", string(attrs)))
	assert.Equal(t, "Step 2. Cook the spaghetti.", res.Response.OutputSpeech.Text)

	attrs, err = json.Marshal(res.SessionAttributes)
	require.NoError(t, err)
	code, body := post(t, srv, intentBody("NextStepIntent", string(attrs)))
	require.Equal(t, http.StatusOK, code, string(body))
	assertGolden(t, "last_step", body)

	assert.Nil(t, f.saved(t, defaultUser))
}

func TestResumeAcrossSessionsOverHTTP(t *testing.T) {
	f, srv := newServer(t)

	ended := `{
  "version": "1.0",
  "session": {
    "sessionId": "amzn1.echo-api.session.1",
    "attributes": {
      "current_recipe_id": "716429",
      "current_recipe_steps": [
        {"number": 1, "text": "Boil the water."},
        {"number": 2, "text": "Cook the spaghetti."},
        {"number": 3, "text": "Drain the pasta."}
      ],
      "current_step": 2
    },
    "user": {"userId": ""}
  },
  "request": {
    "type": "SessionEndedRequest",
    "requestId": "amzn1.echo-api.request.3",
    "reason": "USER_INITIATED"
  }
}`
	res := postTurn(t, srv, ended)
	assert.Nil(t, res.Response.OutputSpeech)
	assert.True(t, res.Response.ShouldEndSession)
	assert.Equal(t, 2, f.saved(t, defaultUser).Step)

	res = postTurn(t, srv, intentBody("NextStepIntent", "{}"))
	assert.Equal(t, "Step 3. Drain the pasta. That was the last step. Enjoy your food!", res.Response.OutputSpeech.Text)
	assert.True(t, res.Response.ShouldEndSession)
}

func TestNoRecipeOverHTTP(t *testing.T) {
	_, srv := newServer(t)

	code, body := post(t, srv, intentBody("NextStepIntent", "{}"))
	require.Equal(t, http.StatusOK, code, string(body))
	assertGolden(t, "no_recipe", body)
}

func TestInvalidIntentOverHTTP(t *testing.T) {
	_, srv := newServer(t)

	client := connect.NewClient[alexa.RequestEnvelope, alexa.ResponseEnvelope](srv.Client(), srv.URL+HandleTurnProcedure, connect.WithCodec(alexa.JSONCodec{}))

	_, err := client.CallUnary(context.Background(), connect.NewRequest(intentRequest("OrderPizzaIntent", alexa.SessionAttributes{}, nil)))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	res, err := client.CallUnary(context.Background(), connect.NewRequest(launchRequest()))
	require.NoError(t, err)
	assert.Contains(t, res.Msg.Response.OutputSpeech.Text, "Start Cooking")
}

func TestDependencyUnavailableOverHTTP(t *testing.T) {
	f, srv := newServer(t)
	f.recipes.Fail(assert.AnError)

	code, _ := post(t, srv, intentBody("StartCookingIntent", "{}"))
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestRejectsNonJSON(t *testing.T) {
	_, srv := newServer(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+HandleTurnProcedure, strings.NewReader(launchBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
}
