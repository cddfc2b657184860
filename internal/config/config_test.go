package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setOrgEnv(t *testing.T) {
	t.Setenv("OAUTH_ORG_CLIENT_ID", "client")
	t.Setenv("OAUTH_ORG_CLIENT_SECRET", "secret")
	t.Setenv("OAUTH_ORG_AUTHORIZE_URL", "https://idp.example.com/authorize")
	t.Setenv("OAUTH_ORG_TOKEN_URL", "https://idp.example.com/token")
	t.Setenv("OAUTH_ORG_USERINFO_URL", "https://idp.example.com/userinfo")
}

func TestLoad_OrgOAuth(t *testing.T) {
	setOrgEnv(t)
	t.Setenv("OAUTH_ORG_JWKS_URL", "https://idp.example.com/jwks")
	t.Setenv("OAUTH_ORG_HTTP_TIMEOUT", "3s")

	cfg := Load()

	assert.True(t, cfg.OrgOAuth.Configured())
	assert.Empty(t, cfg.OrgOAuth.Missing())
	assert.Equal(t, "client", cfg.OrgOAuth.ClientID)
	assert.Equal(t, "https://idp.example.com/jwks", cfg.OrgOAuth.JWKSURL)
	assert.Equal(t, 3*time.Second, cfg.OrgOAuth.HTTPTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("PUBLIC_BASE_URL", "https://assistant.example.com/")

	cfg := Load()

	assert.Equal(t, "8000", cfg.AppPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "https://assistant.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "logs/user_interactions.json", cfg.InteractionLogPath)
}

func TestOrgOAuth_Missing(t *testing.T) {
	o := OrgOAuth{
		ClientID:    "client",
		TokenURL:    "https://idp.example.com/token",
		UserinfoURL: "https://idp.example.com/userinfo",
	}

	assert.False(t, o.Configured())
	assert.Equal(t, []string{"OAUTH_ORG_CLIENT_SECRET", "OAUTH_ORG_AUTHORIZE_URL"}, o.Missing())
}
