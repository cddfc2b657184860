package token

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perform-assistant/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())

		assert.Equal(t, "client", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "https://app.example.com/oauth/callback/org-openid", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func exchange(t *testing.T, srv *httptest.Server) (auth.Credential, error) {
	t.Helper()
	e := NewExchanger(srv.URL, "client", "secret", srv.Client())
	return e.Exchange(
		context.Background(),
		"the-code",
		"https://app.example.com/oauth/callback/org-openid",
	)
}

func TestExchange_TokenSelection(t *testing.T) {
	tests := []struct {
		name string
		body string
		want auth.Credential
	}{
		{
			name: "access token preferred",
			body: `{"access_token":"access-123","id_token":"id-456","token_type":"Bearer"}`,
			want: "access-123",
		},
		{
			name: "id token fallback",
			body: `{"id_token":"id-456"}`,
			want: "id-456",
		},
		{
			name: "empty access token falls back",
			body: `{"access_token":"","id_token":"id-456"}`,
			want: "id-456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := exchange(t, tokenServer(t, http.StatusOK, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cred)
		})
	}
}

func TestExchange_NoUsableToken(t *testing.T) {
	_, err := exchange(t, tokenServer(t, http.StatusOK, `{"token_type":"Bearer"}`))

	var exErr *auth.AuthExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "no usable token in response", exErr.Reason)
}

func TestExchange_MalformedBody(t *testing.T) {
	_, err := exchange(t, tokenServer(t, http.StatusOK, `not json`))

	var exErr *auth.AuthExchangeError
	assert.ErrorAs(t, err, &exErr)
}

func TestExchange_HTTPErrorStatus(t *testing.T) {
	_, err := exchange(t, tokenServer(t, http.StatusBadRequest, `{"error":"invalid_grant"}`))

	var trErr *auth.TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, http.StatusBadRequest, trErr.StatusCode)
	assert.Equal(t, "token", trErr.Op)
}

func TestExchange_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Timeout: 50 * time.Millisecond}
	e := NewExchanger(srv.URL, "client", "secret", client)

	_, err := e.Exchange(context.Background(), "the-code", "https://app.example.com/cb")

	var trErr *auth.TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Zero(t, trErr.StatusCode)
	assert.Error(t, errors.Unwrap(err))
}
