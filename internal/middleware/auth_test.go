// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAdminKey(t *testing.T) {
	tests := []struct {
		name       string
		serverKey  string
		header     string
		setHeader  bool
		wantStatus int
		wantCalled bool
	}{
		{"correct key", "s3cret", "s3cret", true, http.StatusOK, true},
		{"wrong key", "s3cret", "guess", true, http.StatusForbidden, false},
		{"missing header", "s3cret", "", false, http.StatusForbidden, false},
		{"empty header", "s3cret", "", true, http.StatusForbidden, false},
		{"prefix of key", "s3cret", "s3c", true, http.StatusForbidden, false},
		{"case differs", "s3cret", "S3CRET", true, http.StatusForbidden, false},
		{"trailing space", "s3cret", "s3cret ", true, http.StatusForbidden, false},
		{"empty server key rejects all", "", "", true, http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := RequireAdminKey(tt.serverKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/admin/generate-blog", nil)
			if tt.setHeader {
				req.Header.Set(AdminKeyHeader, tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called: got %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestRequireAdminKeyBody(t *testing.T) {
	handler := RequireAdminKey("s3cret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/scheduler-status", nil)
	req.Header.Set(AdminKeyHeader, "nope")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != "Invalid admin key" {
		t.Errorf("detail: got %q, want %q", body["detail"], "Invalid admin key")
	}
}
