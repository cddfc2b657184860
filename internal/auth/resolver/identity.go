package resolver

import (
	"context"
	"errors"

	"perform-assistant/internal/auth"
	"perform-assistant/internal/logger"
)

// IdentityResolver resolves claims through the userinfo endpoint and, when
// that endpoint rejects the credential with 401, through the credential's
// own payload.
type IdentityResolver struct {
	primary  ClaimSource
	fallback ClaimSource
	policy   auth.GroupPolicy
	provider string
}

func NewIdentityResolver(
	primary ClaimSource,
	fallback ClaimSource,
	policy auth.GroupPolicy,
	provider string,
) *IdentityResolver {
	return &IdentityResolver{
		primary:  primary,
		fallback: fallback,
		policy:   policy,
		provider: provider,
	}
}

func (r *IdentityResolver) Resolve(
	ctx context.Context,
	credential auth.Credential,
) (auth.ClaimSet, *auth.User, error) {

	claims, source, err := r.claims(ctx, credential)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("identity claims", map[string]any{
		"provider": r.provider,
		"source":   source,
		"claims":   map[string]any(claims),
	})

	user, err := r.policy.Admit(claims, r.provider)
	if err != nil {
		logger.Warn("access denied", map[string]any{
			"provider":       r.provider,
			"source":         source,
			"required_group": r.policy.Required,
			"groups":         claims.Groups(),
			"sub":            claims.String("sub"),
		})
		return nil, nil, err
	}

	logger.Info("access granted", map[string]any{
		"provider":   r.provider,
		"source":     source,
		"identifier": user.Identifier,
		"name":       user.Metadata.Name,
	})

	return claims, user, nil
}

// claims picks the strategy: userinfo first, the credential payload only
// after a 401. Every other failure is returned as-is.
func (r *IdentityResolver) claims(
	ctx context.Context,
	credential auth.Credential,
) (auth.ClaimSet, string, error) {

	claims, err := r.primary.Claims(ctx, credential)
	if err == nil {
		return claims, "userinfo", nil
	}

	var trErr *auth.TransportError
	if r.fallback == nil || !errors.As(err, &trErr) || !trErr.Unauthorized() {
		return nil, "", err
	}

	logger.Info("userinfo rejected credential, decoding token claims", map[string]any{
		"provider": r.provider,
	})

	// The fallback trusts the credential because it was just issued by the
	// token endpoint. Configure a JWKS URL to have its signature checked.
	claims, err = r.fallback.Claims(ctx, credential)
	if err != nil {
		return nil, "", err
	}

	return claims, "token", nil
}
