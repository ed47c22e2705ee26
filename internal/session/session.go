// Package session carries the bearer credential used for outbound calls
// to the planning service. The planner client never reads token state
// directly; it asks a Source, which either forwards the caller's
// credential from the request context or supplies a fixed service token.
package session

import (
	"context"
	"errors"
)

// ErrNoCredential indicates no bearer credential is available for the call.
var ErrNoCredential = errors.New("no bearer credential in session")

// Source supplies the bearer token to attach to an outgoing call.
type Source interface {
	BearerToken(ctx context.Context) (string, error)
}

type contextKey struct{}

// WithCredential stores a bearer token in the context. The auth middleware
// calls this with the validated request credential so downstream planner
// calls run as the requesting user.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

// CredentialFromContext extracts the stored bearer token, if any.
func CredentialFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(contextKey{}).(string)
	return token, ok && token != ""
}

// ContextSource forwards the credential carried by the request context.
type ContextSource struct{}

// BearerToken returns the context credential or ErrNoCredential.
func (ContextSource) BearerToken(ctx context.Context) (string, error) {
	token, ok := CredentialFromContext(ctx)
	if !ok {
		return "", ErrNoCredential
	}
	return token, nil
}

// StaticSource supplies a fixed service credential, for deployments where
// the planner authenticates the dashboard service rather than end users.
type StaticSource struct {
	Token string
}

// BearerToken returns the configured token or ErrNoCredential when empty.
func (s StaticSource) BearerToken(context.Context) (string, error) {
	if s.Token == "" {
		return "", ErrNoCredential
	}
	return s.Token, nil
}
