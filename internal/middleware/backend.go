// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/olegiv/ocms-content/internal/backend"
	"github.com/olegiv/ocms-content/internal/i18n"
)

// Request headers identifying the acting backend user.
const (
	HeaderBackendUser = "X-Backend-User"
	HeaderUILanguage  = "X-Backend-Language"
)

// BackendUser puts the acting backend user into the request context. The
// UI language comes from X-Backend-Language, then Accept-Language, matched
// against the catalog. Requests without X-Backend-User act as the system user.
func BackendUser(catalog *i18n.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := r.Header.Get(HeaderUILanguage)
			if lang == "" {
				lang = r.Header.Get("Accept-Language")
			}
			lang = catalog.Match(lang)

			u := backend.SystemUser(lang)
			if id := r.Header.Get(HeaderBackendUser); id != "" {
				u = backend.NewUser(id, lang)
			}
			next.ServeHTTP(w, r.WithContext(backend.WithUser(r.Context(), u)))
		})
	}
}
