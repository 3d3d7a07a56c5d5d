// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkpress/internal/service"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.Error{Kind: service.KindValidation, Message: "bad input"}, http.StatusBadRequest},
		{"auth", &service.Error{Kind: service.KindAuth, Message: "nope"}, http.StatusUnauthorized},
		{"forbidden", &service.Error{Kind: service.KindForbidden, Message: "nope"}, http.StatusForbidden},
		{"not found", &service.Error{Kind: service.KindNotFound, Message: "gone"}, http.StatusNotFound},
		{"internal", &service.Error{Kind: service.KindInternal, Err: errors.New("db exploded")}, http.StatusInternalServerError},
		{"untyped", errors.New("raw"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondError(rr, tt.err)

			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
			var env envelope
			if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if env.Success {
				t.Error("success must be false")
			}
			if env.Error == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	rr := httptest.NewRecorder()
	respondError(rr, &service.Error{Kind: service.KindInternal, Err: fmt.Errorf("pq: connection to %q refused", "10.0.0.5:5432")})

	if strings.Contains(rr.Body.String(), "10.0.0.5") {
		t.Errorf("internal details leaked: %s", rr.Body.String())
	}
}

func TestRespondPage(t *testing.T) {
	rr := httptest.NewRecorder()
	respondPage(rr, []string{"a", "b"}, 12, 6, 2)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success || *env.Count != 12 || *env.TotalPages != 6 || *env.CurrentPage != 2 {
		t.Errorf("envelope = %+v", env)
	}
}

func TestRespondDataOmitsPaginationFields(t *testing.T) {
	rr := httptest.NewRecorder()
	respondData(rr, http.StatusOK, map[string]string{"k": "v"})

	body := rr.Body.String()
	for _, field := range []string{"count", "totalPages", "currentPage", "error"} {
		if strings.Contains(body, field) {
			t.Errorf("field %q should be omitted: %s", field, body)
		}
	}
}
