package rbac

import "sync"

// Policy describes the access rules for one route. The zero value means
// "authentication required, no specific permission".
type Policy struct {
	// Open routes bypass the authentication guard entirely, e.g. the
	// captcha endpoint that must be reachable before login.
	Open bool
	// Permission is the string a subject must hold, empty for none.
	Permission string
}

// RouteTable is the explicit route-registration table consulted by both
// guards. Routes declare their policy at registration time instead of
// relying on reflective annotation scanning.
type RouteTable struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewRouteTable constructs an empty table.
func NewRouteTable() *RouteTable {
	return &RouteTable{policies: make(map[string]Policy)}
}

func routeKey(method, pattern string) string {
	return method + " " + pattern
}

// Set registers the policy for a method+pattern pair.
func (t *RouteTable) Set(method, pattern string, policy Policy) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.policies[routeKey(method, pattern)] = policy
}

// Open marks a route as reachable without authentication.
func (t *RouteTable) Open(method, pattern string) {
	t.Set(method, pattern, Policy{Open: true})
}

// Require marks a route as needing the given permission string.
func (t *RouteTable) Require(method, pattern, permission string) {
	t.Set(method, pattern, Policy{Permission: permission})
}

// Lookup returns the policy for a route. Unregistered routes fall back to
// the zero Policy, which fails closed: authentication is still required.
func (t *RouteTable) Lookup(method, pattern string) Policy {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.policies[routeKey(method, pattern)]
}
