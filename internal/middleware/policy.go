package middleware

import (
	"net/http" // HTTP method names
	"strings"  // Path prefix matching

	"cashcard_system/internal/identity" // Role names
)

// Rule is one request-shape predicate paired with a decision. Rules look only
// at the method, path and credential presence, never at any record's owner.
type Rule struct {
	Method        string // Matches any method when empty
	PathPrefix    string // Matches any path when empty
	AnonymousOnly bool   // Rule applies only when no credential is presented
	Allow         bool   // Permit the request without further checks
	Role          string // Role required when Allow is false
}

// Policy is an ordered rule list evaluated before the handler runs.
type Policy []Rule

// Evaluate returns the first matching rule. Requests nothing matches fall
// back to requiring the card-owner role.
func (p Policy) Evaluate(method, path string, hasCredential bool) Rule {
	for _, rule := range p {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if rule.PathPrefix != "" && !strings.HasPrefix(path, rule.PathPrefix) {
			continue
		}
		if rule.AnonymousOnly && hasCredential {
			continue
		}
		return rule
	}
	return Rule{Role: identity.RoleCardOwner}
}

// DefaultPolicy mirrors the route guard for the cash card resource:
// creation is open even to anonymous callers, credential-less GETs pass
// through to the handler's own scoping, and everything else needs an
// authenticated card owner.
func DefaultPolicy() Policy {
	return Policy{
		{Method: http.MethodPost, PathPrefix: "/cashcards", Allow: true},
		{Method: http.MethodGet, AnonymousOnly: true, Allow: true},
		{PathPrefix: "/cashcards", Role: identity.RoleCardOwner},
	}
}
