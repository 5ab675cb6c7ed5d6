package rbac

import "strings"

// roleRoutes is the single authoritative allowed-routes source. Entries are
// either exact paths or prefixes ending in "/*". The bare "*" entry allows
// every path.
var roleRoutes = map[string][]string{
	RoleFarmer: {
		"/", "/dashboard/farmer", "/dashboard/farmer/*",
		"/market", "/market/*", "/cart", "/checkout",
		"/orders", "/orders/*", "/products/mine", "/products/mine/*",
		"/profile", "/messages", "/messages/*", "/recommendations",
	},
	RoleConsumer: {
		"/", "/dashboard/consumer", "/dashboard/consumer/*",
		"/market", "/market/*", "/cart", "/checkout",
		"/orders", "/orders/*",
		"/profile", "/messages", "/messages/*", "/recommendations",
	},
	RoleSupplier: {
		"/", "/dashboard/supplier", "/dashboard/supplier/*",
		"/market", "/market/*", "/cart", "/checkout",
		"/orders", "/orders/*", "/products/mine", "/products/mine/*",
		"/profile", "/messages", "/messages/*", "/recommendations",
	},
	RoleAgent: {
		"/", "/dashboard/agent", "/dashboard/agent/*",
		"/market", "/market/*", "/orders", "/orders/*",
		"/profile", "/messages", "/messages/*",
	},
	RoleAdmin: {"*"},
}

var roleDashboards = map[string]string{
	RoleFarmer:   "/dashboard/farmer",
	RoleConsumer: "/dashboard/consumer",
	RoleSupplier: "/dashboard/supplier",
	RoleAgent:    "/dashboard/agent",
	RoleAdmin:    "/dashboard/admin",
}

// IsRouteAllowed reports whether a role may land on path. ADMIN is always
// allowed. A path matches an entry exactly, or by prefix when the entry ends
// with "/*". Unknown roles are denied.
func IsRouteAllowed(role, path string) bool {
	if role == RoleAdmin {
		return true
	}
	entries, ok := roleRoutes[role]
	if !ok {
		return false
	}
	for _, entry := range entries {
		if entry == "*" || entry == path {
			return true
		}
		if strings.HasSuffix(entry, "/*") && strings.HasPrefix(path, strings.TrimSuffix(entry, "*")) {
			return true
		}
	}
	return false
}

// RoleDashboard returns the default landing path for a role. The redirect
// target for a denied route; unknown roles land on "/".
func RoleDashboard(role string) string {
	if path, ok := roleDashboards[role]; ok {
		return path
	}
	return "/"
}

// AllowedRoutes returns the route entries for a role; callers must not
// mutate the returned slice.
func AllowedRoutes(role string) []string {
	return roleRoutes[role]
}
