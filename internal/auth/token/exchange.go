package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"perform-assistant/internal/auth"
	"perform-assistant/internal/logger"
)

// maxBodySize caps how much of a token response is read.
const maxBodySize = 1 << 20

// Exchanger trades an authorization code for a bearer credential at the
// identity provider's token endpoint.
type Exchanger struct {
	tokenURL     string
	clientID     string
	clientSecret string
	client       *http.Client
}

func NewExchanger(
	tokenURL string,
	clientID string,
	clientSecret string,
	client *http.Client,
) *Exchanger {
	if client == nil {
		client = http.DefaultClient
	}
	return &Exchanger{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

// Exchange posts the code once and returns the access token, or the ID
// token when the provider issued no access token. redirectURI must match
// the one used in the authorization request.
func (e *Exchanger) Exchange(
	ctx context.Context,
	code string,
	redirectURI string,
) (auth.Credential, error) {

	form := url.Values{
		"client_id":     {e.clientID},
		"client_secret": {e.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {redirectURI},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		e.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("token: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", &auth.TransportError{Op: "token", URL: e.tokenURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &auth.TransportError{
			Op:         "token",
			URL:        e.tokenURL,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &auth.TransportError{Op: "token", URL: e.tokenURL, Err: err}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &auth.AuthExchangeError{Reason: "malformed token response", Err: err}
	}

	switch {
	case tr.AccessToken != "":
		return auth.Credential(tr.AccessToken), nil
	case tr.IDToken != "":
		logger.Info("token response has no access_token, using id_token", nil)
		return auth.Credential(tr.IDToken), nil
	default:
		return "", &auth.AuthExchangeError{Reason: "no usable token in response"}
	}
}
