// Package rbac maps roles to capability sets and reachable routes. Every
// check is a pure table lookup so it is safe to call from route guards and
// inline in handlers. Unknown roles always fail closed.
package rbac

const (
	RoleFarmer   = "FARMER"
	RoleConsumer = "CONSUMER"
	RoleSupplier = "SUPPLIER"
	RoleAgent    = "AGENT"
	RoleAdmin    = "ADMIN"
)

// PermAll grants every permission; only ADMIN carries it.
const PermAll = "*"

const (
	PermBrowseMarket   = "browse_market"
	PermManageCart     = "manage_cart"
	PermPlaceOrder     = "place_order"
	PermViewOrders     = "view_orders"
	PermManageOrders   = "manage_orders" // seller-side order actions
	PermManageProducts = "manage_products"
	PermManageFarm     = "manage_farm"
	PermViewAnalytics  = "view_analytics"
	PermAssistClients  = "assist_clients"
	PermModerate       = "moderate_content"
	PermManageUsers    = "manage_users"
)

var rolePermissions = map[string][]string{
	RoleFarmer: {
		PermBrowseMarket, PermManageCart, PermPlaceOrder,
		PermViewOrders, PermManageOrders, PermManageProducts,
		PermManageFarm, PermViewAnalytics,
	},
	RoleConsumer: {
		PermBrowseMarket, PermManageCart, PermPlaceOrder, PermViewOrders,
	},
	RoleSupplier: {
		PermBrowseMarket, PermManageCart, PermPlaceOrder,
		PermViewOrders, PermManageOrders, PermManageProducts,
		PermViewAnalytics,
	},
	RoleAgent: {
		PermBrowseMarket, PermViewOrders, PermAssistClients, PermViewAnalytics,
	},
	RoleAdmin: {PermAll},
}

// HasPermission reports whether the role grants the permission token.
// The wildcard entry grants everything. Unknown roles get nothing.
func HasPermission(role, token string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == PermAll || p == token {
			return true
		}
	}
	return false
}

// Permissions returns the granted tokens for a role; empty for unknown roles.
// Callers must not mutate the returned slice.
func Permissions(role string) []string {
	return rolePermissions[role]
}

// Roles lists the known roles in stable order.
func Roles() []string {
	return []string{RoleFarmer, RoleConsumer, RoleSupplier, RoleAgent, RoleAdmin}
}

// IsKnownRole reports whether role appears in the permission table.
func IsKnownRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}
