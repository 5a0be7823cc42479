package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid, its issuer is
	// wrong, or the signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrAuthenticationFailed indicates the username/password pair could not
	// be verified. Deliberately covers both an unknown username and a wrong
	// password so callers cannot tell which one failed.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
