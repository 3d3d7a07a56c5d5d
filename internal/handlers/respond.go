// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP layer: request decoding, the
// JSON response envelope, and translation of service errors to status
// codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkpress/internal/service"
)

// envelope is the uniform response shape of every API endpoint.
type envelope struct {
	Success     bool   `json:"success"`
	Data        any    `json:"data,omitempty"`
	Error       string `json:"error,omitempty"`
	Count       *int   `json:"count,omitempty"`
	TotalPages  *int   `json:"totalPages,omitempty"`
	CurrentPage *int   `json:"currentPage,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondData writes a success envelope with a data payload.
func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// respondCount writes a success envelope carrying a collection and its
// size.
func respondCount(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// respondPage writes a success envelope carrying one page of a
// collection plus pagination metadata.
func respondPage(w http.ResponseWriter, data any, count, totalPages, currentPage int) {
	writeJSON(w, http.StatusOK, envelope{
		Success:     true,
		Data:        data,
		Count:       &count,
		TotalPages:  &totalPages,
		CurrentPage: &currentPage,
	})
}

// respondError translates a service error into the envelope. Internal
// details never reach the client; they are logged here.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindAuth:
		status = http.StatusUnauthorized
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindNotFound:
		status = http.StatusNotFound
	}

	msg := "internal server error"
	var se *service.Error
	if errors.As(err, &se) && se.Kind != service.KindInternal {
		msg = se.Message
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// badRequest writes a validation failure produced at the HTTP layer.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msg})
}

// notFoundResponse is the catch-all for unknown routes.
func notFoundResponse(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: "resource not found"})
}

// NotFound is the router's fallback handler.
var NotFound = http.HandlerFunc(notFoundResponse)
