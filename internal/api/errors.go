package api

import "errors"

// Error kinds returned by the client. Callers distinguish them with
// errors.Is; the wrapped message carries the HTTP status and any server
// explanation.
var (
	// ErrAuth means the credentials were rejected (HTTP 401).
	ErrAuth = errors.New("authentication failed")
	// ErrForbidden means the caller is not allowed to touch the resource,
	// typically a story owned by someone else (HTTP 403).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the resource does not exist, e.g. a stale story ID
	// (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrValidation means the server rejected the request payload, e.g. a
	// duplicate username on signup (remaining 4xx).
	ErrValidation = errors.New("invalid request")
	// ErrTransient means a network or server failure that is safe to retry
	// (transport errors and 5xx).
	ErrTransient = errors.New("transient remote failure")
)
