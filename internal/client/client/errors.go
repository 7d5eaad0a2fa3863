package client

import "errors"

var (
	// ErrUnavailable covers transport-level failures: the request never
	// produced an HTTP response.
	ErrUnavailable = errors.New("service unavailable")

	// ErrRejected covers non-success HTTP statuses; the wrapped message,
	// when present, comes from the service's error payload.
	ErrRejected = errors.New("request rejected")

	// ErrUnauthorized is a rejection caused by a missing or invalid token.
	ErrUnauthorized = errors.New("unauthorized")
)
