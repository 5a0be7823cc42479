package auth

import "time"

// NewTestJWTService creates a JWT service with an injected time function so
// tests can control "now" deterministically. Clock skew is disabled so
// expiration boundaries are exact.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}
