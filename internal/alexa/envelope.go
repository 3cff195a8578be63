// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package alexa contains the request and response envelopes exchanged with the
// voice platform.
package alexa

import (
	"encoding/json"

	"github.com/curioswitch/souschef/internal/souschefdb"
)

const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

const responseVersion = "1.0"

// RequestEnvelope is a single turn sent by the platform.
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

type Session struct {
	New         bool              `json:"new"`
	SessionID   string            `json:"sessionId"`
	Application Application       `json:"application"`
	Attributes  SessionAttributes `json:"attributes"`
	User        User              `json:"user"`
}

type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp"`
	Locale    string  `json:"locale"`
	Intent    *Intent `json:"intent,omitempty"`

	// Reason is why the session ended, only set for SessionEndedRequest.
	Reason string `json:"reason,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// SlotValue returns the value of the named slot, or an empty string if the slot
// was not filled.
func (i *Intent) SlotValue(name string) string {
	if i == nil {
		return ""
	}
	return i.Slots[name].Value
}

// SessionAttributes carry the user's progress between turns of one session. The
// platform returns them verbatim on the next turn.
type SessionAttributes struct {
	RecipeID string            `json:"current_recipe_id,omitempty"`
	Steps    []souschefdb.Step `json:"current_recipe_steps,omitempty"`
	Step     int               `json:"current_step"`
}

// AttributesFor returns the session attributes holding progress.
func AttributesFor(p souschefdb.Progress) SessionAttributes {
	return SessionAttributes{
		RecipeID: p.RecipeID,
		Steps:    p.Steps,
		Step:     p.Step,
	}
}

// Progress returns the progress held by the attributes, and false if they do not
// hold a recipe.
func (a SessionAttributes) Progress() (souschefdb.Progress, bool) {
	if a.RecipeID == "" {
		return souschefdb.Progress{}, false
	}
	return souschefdb.Progress{
		RecipeID: a.RecipeID,
		Steps:    a.Steps,
		Step:     a.Step,
	}, true
}

// MarshalJSON writes attributes without a recipe as an empty object.
func (a SessionAttributes) MarshalJSON() ([]byte, error) {
	if a.RecipeID == "" {
		return []byte("{}"), nil
	}
	type attributes SessionAttributes
	return json.Marshal(attributes(a))
}

// ResponseEnvelope is the reply to a turn.
type ResponseEnvelope struct {
	Version           string            `json:"version"`
	SessionAttributes SessionAttributes `json:"sessionAttributes"`
	Response          Response          `json:"response"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// Speech is the content of a spoken reply.
type Speech struct {
	// Title is the title of the card shown in the companion app.
	Title string

	// Text is spoken and shown on the card.
	Text string

	// Reprompt is spoken if the user does not answer. Empty disables reprompting.
	Reprompt string

	// EndSession ends the session after speaking.
	EndSession bool
}

// Reply builds a response speaking s with the given session attributes.
func Reply(attrs SessionAttributes, s Speech) *ResponseEnvelope {
	res := &ResponseEnvelope{
		Version:           responseVersion,
		SessionAttributes: attrs,
		Response: Response{
			OutputSpeech: &OutputSpeech{
				Type: "PlainText",
				Text: s.Text,
			},
			Card: &Card{
				Type:    "Simple",
				Title:   s.Title,
				Content: s.Text,
			},
			ShouldEndSession: s.EndSession,
		},
	}
	if s.Reprompt != "" {
		res.Response.Reprompt = &Reprompt{
			OutputSpeech: OutputSpeech{
				Type: "PlainText",
				Text: s.Reprompt,
			},
		}
	}
	return res
}

// Silent builds a response without speech, for requests the platform does not
// speak a reply to.
func Silent() *ResponseEnvelope {
	return &ResponseEnvelope{
		Version: responseVersion,
		Response: Response{
			ShouldEndSession: true,
		},
	}
}
