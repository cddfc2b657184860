package provider

import (
	"context"

	"perform-assistant/internal/auth"
	"perform-assistant/internal/auth/resolver"
)

// OAuthProvider defines the contract of the external identity source.
// Implementations return identity facts plus the access decision; they
// must not create sessions.
type OAuthProvider interface {
	// ID returns the provider identifier (e.g. "org-openid").
	ID() string

	// AuthCodeURL returns the authorization URL the browser is sent to.
	AuthCodeURL(state string, redirectURI string) string

	// Exchange trades the authorization code for a bearer credential.
	Exchange(
		ctx context.Context,
		code string,
		redirectURI string,
	) (auth.Credential, error)

	resolver.Resolver
}
