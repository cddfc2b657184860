package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// TransportError reports a failure to reach an identity provider endpoint:
// a network error, a timeout, or a non-success HTTP status.
type TransportError struct {
	Op         string // "token" or "userinfo"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request to %s failed with status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s request to %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Unauthorized reports whether the endpoint rejected the credential.
func (e *TransportError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// AuthExchangeError reports that a token or claims could not be obtained in
// a structurally valid form. It is terminal for the login attempt.
type AuthExchangeError struct {
	Reason string
	Err    error
}

func (e *AuthExchangeError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *AuthExchangeError) Unwrap() error { return e.Err }

// AuthorizationError reports a valid identity that lacks the required group.
type AuthorizationError struct {
	RequiredGroup string
	Groups        []string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf(
		"access denied: user must be member of %q group (has [%s])",
		e.RequiredGroup,
		strings.Join(e.Groups, ", "),
	)
}
