// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package i18n

import (
	"context"
	"net/http"
	"strings"
)

type userLanguageContextKey struct{}

var userLanguageContextKeyInstance = userLanguageContextKey{}

// Middleware sets the user language from the Accept-Language header. Handlers
// that receive a locale in the request body may override it with WithLocale.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lng := r.Header.Get("Accept-Language")
			lng, _, _ = strings.Cut(lng, ",")
			lng, _, _ = strings.Cut(lng, ";")

			if ctx := WithLocale(r.Context(), lng); ctx != r.Context() {
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithLocale returns a context with the language of a locale such as en-US.
// An empty locale returns ctx unchanged.
func WithLocale(ctx context.Context, locale string) context.Context {
	lng, _, _ := strings.Cut(strings.TrimSpace(locale), "-")
	if lng == "" {
		return ctx
	}
	return context.WithValue(ctx, userLanguageContextKeyInstance, strings.ToLower(lng))
}

// UserLanguage returns the language code of the user, e.g. en, or an empty string if unknown.
func UserLanguage(ctx context.Context) string {
	if lng, ok := ctx.Value(userLanguageContextKeyInstance).(string); ok {
		return lng
	}
	return ""
}
