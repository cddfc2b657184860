package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"perform-assistant/internal/auth"
)

const maxBodySize = 1 << 20

// UserinfoSource asks the provider's userinfo endpoint for the claims. The
// provider checks the credential, so these claims are trusted as-is.
type UserinfoSource struct {
	url    string
	client *http.Client
}

func NewUserinfoSource(url string, client *http.Client) *UserinfoSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &UserinfoSource{url: url, client: client}
}

// Claims returns a *auth.TransportError for network failures and non-2xx
// statuses; a 401 is reported through TransportError.Unauthorized.
func (s *UserinfoSource) Claims(
	ctx context.Context,
	credential auth.Credential,
) (auth.ClaimSet, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("userinfo: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+string(credential))
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &auth.TransportError{Op: "userinfo", URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &auth.TransportError{
			Op:         "userinfo",
			URL:        s.url,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &auth.TransportError{Op: "userinfo", URL: s.url, Err: err}
	}

	var claims auth.ClaimSet
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, fmt.Errorf("userinfo: decode response: %w", err)
	}
	if claims == nil {
		claims = auth.ClaimSet{}
	}

	return claims, nil
}
