package service

import (
	"net/url"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// Decision is the outcome of one guard evaluation.
type Decision int

const (
	// DecisionAllow renders the requested content unchanged.
	DecisionAllow Decision = iota
	// DecisionPending means the session is still resolving: show a neutral
	// loading state and navigate nowhere.
	DecisionPending
	// DecisionLogin redirects to the login fallback, carrying the
	// originally requested path.
	DecisionLogin
	// DecisionDenied redirects an authenticated but unauthorized user to
	// the default landing area. Never the login page.
	DecisionDenied
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionPending:
		return "pending"
	case DecisionLogin:
		return "login"
	case DecisionDenied:
		return "denied"
	}
	return "unknown"
}

// GuardResult pairs a decision with the redirect target, when any.
type GuardResult struct {
	Decision   Decision
	RedirectTo string
}

// RouteGuard decides whether a navigation target may render. It is a pure
// function of (session, required roles): all state lives in the session, and
// every navigation re-evaluates from scratch.
type RouteGuard struct {
	fallbackPath string // where unauthenticated navigations go
	landingPath  string // where unauthorized-but-authenticated ones go
}

// NewRouteGuard builds a guard. Empty paths fall back to the portal
// defaults (/login and /dashboard).
func NewRouteGuard(fallbackPath, landingPath string) *RouteGuard {
	if fallbackPath == "" {
		fallbackPath = domain.LoginPath
	}
	if landingPath == "" {
		landingPath = domain.DefaultLandingPath
	}
	return &RouteGuard{fallbackPath: fallbackPath, landingPath: landingPath}
}

// Evaluate applies the decision table for one navigation to requestedPath:
//
//  1. session still resolving       → pending, no navigation
//  2. not authenticated             → redirect to fallback, keep origin
//  3. required roles unmet          → redirect to landing area
//  4. otherwise                     → allow
//
// An empty required list means any authenticated user may pass; that
// special case lives here, not in Session.HasRole.
func (g *RouteGuard) Evaluate(sess domain.Session, required []domain.Role, requestedPath string) GuardResult {
	if sess.IsLoading {
		return GuardResult{Decision: DecisionPending}
	}

	if !sess.IsAuthenticated {
		target := g.fallbackPath
		if requestedPath != "" {
			target += "?from=" + url.QueryEscape(requestedPath)
		}
		return GuardResult{Decision: DecisionLogin, RedirectTo: target}
	}

	if len(required) > 0 && !sess.HasRole(required...) {
		return GuardResult{Decision: DecisionDenied, RedirectTo: g.landingPath}
	}

	return GuardResult{Decision: DecisionAllow}
}

// EvaluateRoute resolves requestedPath against the route table first:
// public routes always render, unknown routes require authentication only.
func (g *RouteGuard) EvaluateRoute(sess domain.Session, table domain.RouteTable, requestedPath string) GuardResult {
	rp, found := table.Match(requestedPath)
	if found && rp.Public {
		return GuardResult{Decision: DecisionAllow}
	}
	var required []domain.Role
	if found {
		required = rp.Roles
	}
	return g.Evaluate(sess, required, requestedPath)
}
