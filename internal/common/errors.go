// Package common defines shared constants and sentinel errors used across
// the gateway, cache, and repository layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Gateway availability and auth errors. ErrRemoteUnavailable means the
	// remote service could not be reached at all; ErrUnauthenticated means
	// the service is up but the operation requires a signed-in session.
	// The two must stay distinguishable so repositories can decide whether
	// to fall back or surface the failure.
	ErrRemoteUnavailable = errors.New("remote service not available")
	ErrUnauthenticated   = errors.New("not authenticated")

	// ErrRemoteOperation wraps a failure reported by the remote store itself
	// (network, permission, quota). The underlying driver error is preserved
	// via wrapping for diagnostics.
	ErrRemoteOperation = errors.New("remote operation failed")

	// ErrLocalStorage marks a local cache read/write failure. During reads
	// callers degrade to seed defaults; during writes it is user-visible,
	// because the change was not durably saved anywhere.
	ErrLocalStorage = errors.New("local storage unavailable")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrEmailTaken is returned by sign-up when the address is registered.
	ErrEmailTaken = errors.New("email already registered")
)
