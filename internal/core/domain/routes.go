package domain

import "strings"

// RoutePermission associates a navigable path with the roles permitted to
// view it. An empty Roles list with Public false means "any authenticated
// user"; Public true means no authentication is required at all.
type RoutePermission struct {
	Path   string
	Roles  []Role
	Public bool
}

// RouteTable is the single declarative access-control policy for page
// routes. Keeping the whole policy in one table makes it auditable in one
// place instead of scattered per-view checks.
type RouteTable []RoutePermission

// Match returns the most specific (longest-prefix) permission entry for
// path. The boolean is false when no entry covers the path.
func (t RouteTable) Match(path string) (RoutePermission, bool) {
	var (
		best  RoutePermission
		found bool
	)
	for _, rp := range t {
		if !pathCovers(rp.Path, path) {
			continue
		}
		if !found || len(rp.Path) > len(best.Path) {
			best = rp
			found = true
		}
	}
	return best, found
}

// pathCovers reports whether prefix covers path on segment boundaries, so
// "/dashboard/user" does not cover "/dashboard/user-management".
func pathCovers(prefix, path string) bool {
	if prefix == path {
		return true
	}
	if prefix == "/" {
		// the root entry covers only itself, not every path
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(path, prefix)
}

// DefaultLandingPath is where authenticated but unauthorized navigations are
// sent. Never the login page: the user is logged in, just not allowed here.
const DefaultLandingPath = "/dashboard"

// LoginPath is the fallback for unauthenticated navigations.
const LoginPath = "/login"

// DashboardRoutes is the portal's page-route policy.
var DashboardRoutes = RouteTable{
	{Path: "/", Public: true},
	{Path: "/login", Public: true},
	{Path: "/register", Public: true},
	{Path: "/certificates/verify", Public: true},
	{Path: "/dashboard"}, // any authenticated user
	{Path: "/dashboard/orders", Roles: []Role{RoleCustomer, RoleConsultant, RoleManager, RoleAdmin}},
	{Path: "/dashboard/assessments", Roles: []Role{RoleAssessmentStaff, RoleConsultant, RoleManager, RoleAdmin}},
	{Path: "/dashboard/certificates", Roles: []Role{RoleManager, RoleAdmin}},
	{Path: "/dashboard/user-management", Roles: []Role{RoleAdmin}},
	{Path: "/dashboard/settings", Roles: []Role{RoleAdmin}},
}
