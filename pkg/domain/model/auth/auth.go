package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// Token is the authenticated caller identity attached to a request context.
// Identity verification itself is an external collaborator; the service only
// carries the resolved subject through the pipeline for ownership checks.
type Token struct {
	Sub   string
	Email string
	Name  string
}

// AnonymousSub is the subject used when the service runs without
// authentication (development mode).
const AnonymousSub = "anonymous"

// NewAnonymousUser returns the token used in no-auth mode
func NewAnonymousUser() *Token {
	return &Token{
		Sub:  AnonymousSub,
		Name: "Anonymous",
	}
}

// IsAnonymous reports whether the token is the no-auth development identity
func (t *Token) IsAnonymous() bool {
	return t.Sub == AnonymousSub
}

type ctxKey struct{}

// ContextWithToken returns a context carrying the token
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext extracts the token from the context
func TokenFromContext(ctx context.Context) (*Token, error) {
	token, ok := ctx.Value(ctxKey{}).(*Token)
	if !ok || token == nil {
		return nil, goerr.New("no auth token in context")
	}
	return token, nil
}
