// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
)

// AdminKeyHeader carries the shared admin secret.
const AdminKeyHeader = "X-Admin-Key"

// ErrAuthRejected is reported for a missing or wrong admin key.
var ErrAuthRejected = errors.New("invalid admin key")

// authRejectedDetail is the client-facing body for ErrAuthRejected.
const authRejectedDetail = "Invalid admin key"

// RequireAdminKey rejects requests whose X-Admin-Key header does not equal
// key with 403 before the wrapped handler runs. An empty key rejects every
// request.
func RequireAdminKey(key string) func(http.Handler) http.Handler {
	want := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(AdminKeyHeader))
			if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				slog.Warn("admin request rejected",
					"error", ErrAuthRejected,
					"path", r.URL.Path,
					"remote", clientIP(r),
					"key_present", len(got) > 0,
				)
				writeDetail(w, http.StatusForbidden, authRejectedDetail)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
