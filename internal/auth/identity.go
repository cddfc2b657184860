package auth

// Credential is the bearer string returned by the token endpoint. It is
// either an access token or, when none was issued, an ID token. It is used
// for a single identity lookup and then discarded.
type Credential string

// ClaimSet holds the raw claims describing the authenticated subject,
// taken either from the userinfo response or from the credential payload.
type ClaimSet map[string]any

// String returns the claim as a string, or "" when absent or not a string.
func (c ClaimSet) String(key string) string {
	v, ok := c[key].(string)
	if !ok {
		return ""
	}
	return v
}

// Has reports whether the claim is present with a non-empty string value.
func (c ClaimSet) Has(key string) bool {
	return c.String(key) != ""
}

// Groups returns the "groups" claim. A missing or malformed claim yields an
// empty, non-nil slice; non-string members are skipped.
func (c ClaimSet) Groups() []string {
	switch v := c["groups"].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, g := range v {
			if s, ok := g.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// Metadata is the descriptive part of a normalized user.
type Metadata struct {
	Name       string   `json:"name"`
	EmployeeID string   `json:"employee_id"`
	Groups     []string `json:"groups"`
	Provider   string   `json:"provider"`
}

// User is the normalized identity handed to the chat application after a
// successful login. It is never persisted beyond the session.
type User struct {
	Identifier string   `json:"identifier"`
	Metadata   Metadata `json:"metadata"`
}

const (
	fallbackIdentifier = "unknown@unknown.com"
	fallbackName       = "Unknown User"
)

// newUser builds the normalized user. Callers must have passed the group
// check first; see GroupPolicy.Admit.
func newUser(claims ClaimSet, groups []string, provider string) *User {
	id := claims.String("sub")
	if id == "" {
		id = claims.String("email")
	}
	if id == "" {
		id = fallbackIdentifier
	}

	name := claims.String("name")
	if name == "" {
		name = fallbackName
	}

	return &User{
		Identifier: id,
		Metadata: Metadata{
			Name:       name,
			EmployeeID: claims.String("employee_id"),
			Groups:     groups,
			Provider:   provider,
		},
	}
}
