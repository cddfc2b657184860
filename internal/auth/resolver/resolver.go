package resolver

import (
	"context"

	"perform-assistant/internal/auth"
)

// Resolver turns a bearer credential into claims and a normalized user.
// It is the ONLY place where the group policy is applied.
type Resolver interface {
	Resolve(
		ctx context.Context,
		credential auth.Credential,
	) (auth.ClaimSet, *auth.User, error)
}

// ClaimSource obtains the raw claims for a credential.
type ClaimSource interface {
	Claims(ctx context.Context, credential auth.Credential) (auth.ClaimSet, error)
}
