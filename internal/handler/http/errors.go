// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header does not use the Bearer scheme.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the Bearer scheme is present but the
	// token value itself is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrNoUserInContext means a protected handler ran without the auth
	// middleware in front of it.
	ErrNoUserInContext = errors.New("no user id in request context")

	// ErrUnknownTokenSubject is returned when a valid token names a user
	// that no longer exists.
	ErrUnknownTokenSubject = errors.New("token subject does not exist")
)

// Request decoding errors.
var (
	// ErrInvalidBody is returned for a body that is not valid JSON or form data.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrBodyTooLarge is returned when the body exceeds the accepted size.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrUnexpectedFile is returned for a file part the route does not accept.
	ErrUnexpectedFile = errors.New("unexpected file field")

	// ErrRateLimited is returned when a client exceeds the auth rate limit.
	ErrRateLimited = errors.New("rate limit exceeded")
)
