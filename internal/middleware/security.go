// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders adds defensive HTTP headers to every response. The API
// serves JSON (plus uploaded images), so framing is denied outright and
// referrer information is kept to the origin.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Never let the browser second-guess the Content-Type.
		h.Set("X-Content-Type-Options", "nosniff")

		// A JSON API has no business inside a frame.
		h.Set("X-Frame-Options", "DENY")

		// Don't leak full URLs (reset-token paths included) cross-origin.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		h.Set("Permissions-Policy", "interest-cohort=()")

		next.ServeHTTP(w, r)
	})
}
