package service

import "context"

// TokenProvider supplies a bearer token for authenticated calls to the portal
// HTTP API. Implementations refresh expired tokens transparently.
type TokenProvider interface {
	// Token returns a currently-valid bearer token, or an empty string when
	// no session is active.
	Token(ctx context.Context) (string, error)
}
