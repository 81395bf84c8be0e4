package middleware

import "strings"

// RoutePolicy declares the gatekeeping requirements for one route.
type RoutePolicy struct {
	// RequiredRole is the minimum role per the role hierarchy. Empty means
	// no role requirement beyond authentication.
	RequiredRole string
	// Tier names the rate-limit tier. Unknown names fall back to `default`.
	Tier string
}

// Policies is the static route policy table consulted by the auth, RBAC and
// rate-limit stages. It is built once at router construction and never
// mutated afterwards.
type Policies struct {
	// Routes maps registered route paths to their policy.
	Routes map[string]RoutePolicy
	// PublicPrefixes lists path prefixes that bypass authentication and
	// authorization entirely (they are still rate limited).
	PublicPrefixes []string
	// DefaultDeny rejects routes present in neither table. When false the
	// legacy behaviour applies: unlisted routes are treated as public once
	// authenticated.
	DefaultDeny bool
}

// IsPublic reports whether path is on the public allow-list.
func (p *Policies) IsPublic(path string) bool {
	for _, prefix := range p.PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Lookup returns the policy for path and whether one is declared.
func (p *Policies) Lookup(path string) (RoutePolicy, bool) {
	pol, ok := p.Routes[path]
	return pol, ok
}
