// Package common contains shared constants and sentinel errors used across
// StackQuery components.
package common

const (
	// SessionHeaderName is the gRPC metadata key that carries the session
	// secret, the equivalent of a session cookie.
	SessionHeaderName = "x-session"

	// JWTHeaderName is the gRPC metadata key that carries the short-lived
	// JWT on document writes.
	JWTHeaderName = "x-jwt"
)
