package org

import (
	"context"
	"net/http"

	"perform-assistant/internal/auth"
	"perform-assistant/internal/auth/resolver"
	"perform-assistant/internal/auth/token"
	"perform-assistant/internal/config"
	"perform-assistant/internal/logger"

	"golang.org/x/oauth2"
)

// ProviderID is the identifier of the organization identity provider.
const ProviderID = "org-openid"

// Provider authenticates against the organization's OpenID-style identity
// provider and admits only members of auth.RequiredGroup.
type Provider struct {
	oauthConfig *oauth2.Config
	exchanger   *token.Exchanger
	resolver    *resolver.IdentityResolver
}

// New builds the provider from configuration. It performs no network
// calls; an incomplete configuration is caught by the registration gate.
func New(ctx context.Context, cfg config.OrgOAuth) *Provider {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthorizeURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: []string{"openid", "profile", "email", "groups"},
	}

	var fallback resolver.ClaimSource
	if cfg.JWKSURL != "" {
		fallback = resolver.NewVerifiedTokenSource(ctx, cfg.JWKSURL, cfg.Issuer, httpClient)
		logger.Info("org oauth fallback claims are signature checked", map[string]any{
			"jwks_url": cfg.JWKSURL,
		})
	} else {
		fallback = resolver.NewUnverifiedTokenSource()
	}

	return &Provider{
		oauthConfig: oauthCfg,
		exchanger: token.NewExchanger(
			cfg.TokenURL,
			cfg.ClientID,
			cfg.ClientSecret,
			httpClient,
		),
		resolver: resolver.NewIdentityResolver(
			resolver.NewUserinfoSource(cfg.UserinfoURL, httpClient),
			fallback,
			auth.DefaultPolicy(),
			ProviderID,
		),
	}
}

// ID returns the provider identifier used by the registry.
func (p *Provider) ID() string {
	return ProviderID
}

// AuthCodeURL builds the authorization URL for the code flow.
func (p *Provider) AuthCodeURL(state string, redirectURI string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("redirect_uri", redirectURI),
		oauth2.SetAuthURLParam("response_mode", "query"),
	)
}

// Exchange exchanges the authorization code for a bearer credential.
// This method MUST NOT create sessions.
func (p *Provider) Exchange(
	ctx context.Context,
	code string,
	redirectURI string,
) (auth.Credential, error) {

	cred, err := p.exchanger.Exchange(ctx, code, redirectURI)
	if err != nil {
		logger.Error("org oauth token exchange failed", map[string]any{
			"error": err.Error(),
		})
		return "", err
	}

	return cred, nil
}

// Resolve returns the raw claims and the admitted user for credential.
func (p *Provider) Resolve(
	ctx context.Context,
	credential auth.Credential,
) (auth.ClaimSet, *auth.User, error) {
	return p.resolver.Resolve(ctx, credential)
}
