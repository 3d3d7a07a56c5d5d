// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service implements the application's business operations on
// top of the store layer. Handlers stay thin: they decode requests,
// call a service method, and translate the typed error into an HTTP
// response.
package service

import "errors"

// Kind classifies a service failure so handlers can map it to a status
// code without inspecting error strings.
type Kind int

const (
	// KindValidation means the input was malformed or violated a rule.
	KindValidation Kind = iota + 1
	// KindAuth means the caller is not authenticated or credentials
	// were wrong.
	KindAuth
	// KindForbidden means the caller is authenticated but not allowed.
	KindForbidden
	// KindNotFound means the referenced entity does not exist.
	KindNotFound
	// KindInternal means an unexpected failure; details stay server-side.
	KindInternal
)

// Error is the typed error returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "service error"
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, defaulting to KindInternal when
// err is not a service error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func invalid(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func unauthorized(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

func notFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}
