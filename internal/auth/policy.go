package auth

import "slices"

// RequiredGroup is the group every user must belong to.
// TODO: read from OAUTH_ORG_REQUIRED_GROUP once other tenants need the assistant.
const RequiredGroup = `us\us.employees`

// GroupPolicy admits only members of a single group.
type GroupPolicy struct {
	Required string
}

// DefaultPolicy returns the policy for RequiredGroup.
func DefaultPolicy() GroupPolicy {
	return GroupPolicy{Required: RequiredGroup}
}

// Check reports an *AuthorizationError unless groups contains the required
// group. Matching is exact.
func (p GroupPolicy) Check(groups []string) error {
	if slices.Contains(groups, p.Required) {
		return nil
	}
	return &AuthorizationError{
		RequiredGroup: p.Required,
		Groups:        groups,
	}
}

// Admit applies the group check to claims and, only if it passes, returns
// the normalized user tagged with provider.
func (p GroupPolicy) Admit(claims ClaimSet, provider string) (*User, error) {
	groups := claims.Groups()
	if err := p.Check(groups); err != nil {
		return nil, err
	}
	return newUser(claims, groups, provider), nil
}
