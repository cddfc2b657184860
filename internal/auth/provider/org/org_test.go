package org

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"perform-assistant/internal/auth"
	"perform-assistant/internal/auth/provider"
	"perform-assistant/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdP serves the token and userinfo endpoints of an identity provider.
func fakeIdP(t *testing.T, userinfoStatus int, groups []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" || userinfoStatus != http.StatusOK {
			w.WriteHeader(userinfoStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sub":    "jdoe",
			"name":   "Jane Doe",
			"groups": groups,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(base string) config.OrgOAuth {
	return config.OrgOAuth{
		ClientID:     "client",
		ClientSecret: "secret",
		AuthorizeURL: base + "/authorize",
		TokenURL:     base + "/token",
		UserinfoURL:  base + "/userinfo",
		HTTPTimeout:  2 * time.Second,
	}
}

func TestProvider_AuthCodeURL(t *testing.T) {
	p := New(context.Background(), testConfig("https://idp.example.com"))

	raw := p.AuthCodeURL("st4te", "https://app.example.com/oauth/callback/org-openid")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "/authorize", u.Path)
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "query", q.Get("response_mode"))
	assert.Equal(t, "openid profile email groups", q.Get("scope"))
	assert.Equal(t, "client", q.Get("client_id"))
	assert.Equal(t, "st4te", q.Get("state"))
	assert.Equal(t, "https://app.example.com/oauth/callback/org-openid", q.Get("redirect_uri"))
}

func TestProvider_LoginFlow(t *testing.T) {
	srv := fakeIdP(t, http.StatusOK, []string{auth.RequiredGroup})
	p := New(context.Background(), testConfig(srv.URL))

	cred, err := p.Exchange(context.Background(), "good-code", "https://app.example.com/cb")
	require.NoError(t, err)
	assert.Equal(t, auth.Credential("at-1"), cred)

	_, user, err := p.Resolve(context.Background(), cred)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Identifier)
	assert.Equal(t, ProviderID, user.Metadata.Provider)
}

func TestProvider_LoginFlowDenied(t *testing.T) {
	srv := fakeIdP(t, http.StatusOK, []string{"contractors"})
	p := New(context.Background(), testConfig(srv.URL))

	cred, err := p.Exchange(context.Background(), "good-code", "https://app.example.com/cb")
	require.NoError(t, err)

	_, user, err := p.Resolve(context.Background(), cred)
	var authzErr *auth.AuthorizationError
	assert.ErrorAs(t, err, &authzErr)
	assert.Nil(t, user)
}

func TestProvider_ExchangeRejected(t *testing.T) {
	srv := fakeIdP(t, http.StatusOK, nil)
	p := New(context.Background(), testConfig(srv.URL))

	_, err := p.Exchange(context.Background(), "bad-code", "https://app.example.com/cb")

	var trErr *auth.TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, http.StatusBadRequest, trErr.StatusCode)
}

func TestProvider_RegistersOnce(t *testing.T) {
	cfg := testConfig("https://idp.example.com")
	reg := provider.NewRegistry()

	assert.True(t, reg.Register(ProviderID, New(context.Background(), cfg), cfg.Configured()))
	assert.False(t, reg.Register(ProviderID, New(context.Background(), cfg), cfg.Configured()))
	assert.Len(t, reg.List(), 1)

	cfg.UserinfoURL = ""
	empty := provider.NewRegistry()
	assert.False(t, empty.Register(ProviderID, New(context.Background(), cfg), cfg.Configured()))
	assert.Empty(t, empty.List())
}
