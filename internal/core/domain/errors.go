package domain

import "errors"

var (
	// ErrUnauthenticated is the single opaque credential failure surfaced to
	// callers. Expired tokens, bad signatures, unknown subjects, inactive
	// accounts and stale role claims all collapse into it so the API does not
	// leak which check failed.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden means the caller is authenticated but its role does not
	// satisfy the endpoint's requirement.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrRateLimited means the caller exhausted its quota for the current
	// window and may retry after the window resets.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUpstreamUnavailable means a backing store (counter or credential)
	// could not be reached within its deadline.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)
