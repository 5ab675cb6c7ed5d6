package rbac

import "testing"

func TestUnknownRoleFailsClosed(t *testing.T) {
	for _, role := range []string{"", "WHOLESALER", "farmer", "unknown"} {
		if HasPermission(role, PermBrowseMarket) {
			t.Errorf("role %q should grant no permissions", role)
		}
		if HasPermission(role, PermAll) {
			t.Errorf("role %q should not hold the wildcard", role)
		}
		for _, path := range []string{"/market", "/dashboard/farmer", "/orders/1"} {
			if IsRouteAllowed(role, path) {
				t.Errorf("role %q should be denied %q", role, path)
			}
		}
		if got := RoleDashboard(role); got != "/" {
			t.Errorf("unknown role %q dashboard = %q, want /", role, got)
		}
	}
}

func TestAdminWildcard(t *testing.T) {
	for _, token := range []string{PermManageUsers, PermManageFarm, "anything_at_all"} {
		if !HasPermission(RoleAdmin, token) {
			t.Errorf("admin should hold %q", token)
		}
	}
	for _, path := range []string{"/", "/dashboard/farmer", "/totally/unlisted"} {
		if !IsRouteAllowed(RoleAdmin, path) {
			t.Errorf("admin should reach %q", path)
		}
	}
}

func TestEveryDashboardIsReachable(t *testing.T) {
	for _, role := range Roles() {
		dash := RoleDashboard(role)
		if !IsRouteAllowed(role, dash) {
			t.Errorf("role %s cannot reach its own dashboard %q", role, dash)
		}
	}
}

func TestRouteWildcardPrefix(t *testing.T) {
	cases := []struct {
		role, path string
		want       bool
	}{
		{RoleConsumer, "/market", true},
		{RoleConsumer, "/market/produce/tomatoes", true},
		{RoleConsumer, "/dashboard/consumer/stats", true},
		{RoleConsumer, "/dashboard/farmer", false},
		{RoleConsumer, "/products/mine", false},
		{RoleAgent, "/cart", false},
		{RoleFarmer, "/products/mine/p123", true},
	}
	for _, c := range cases {
		if got := IsRouteAllowed(c.role, c.path); got != c.want {
			t.Errorf("IsRouteAllowed(%s, %q) = %v, want %v", c.role, c.path, got, c.want)
		}
	}
}

func TestPermissionsPerRole(t *testing.T) {
	if !HasPermission(RoleFarmer, PermManageProducts) {
		t.Error("farmer should manage products")
	}
	if HasPermission(RoleConsumer, PermManageProducts) {
		t.Error("consumer should not manage products")
	}
	if HasPermission(RoleAgent, PermPlaceOrder) {
		t.Error("agent should not place orders")
	}
	if !HasPermission(RoleAgent, PermAssistClients) {
		t.Error("agent should assist clients")
	}
}

func TestNormalizeSubRole(t *testing.T) {
	cases := []struct {
		role, sub, want string
	}{
		{RoleConsumer, "", SubIndividualConsumer},
		{RoleConsumer, "NOT_A_SUBROLE", SubIndividualConsumer},
		{RoleConsumer, SubRestaurant, SubRestaurant},
		{RoleFarmer, SubOrganicFarmer, SubOrganicFarmer},
		{RoleFarmer, SubRetailer, SubSmallholderFarmer}, // belongs to CONSUMER
		{"UNKNOWN", SubRetailer, ""},
	}
	for _, c := range cases {
		if got := NormalizeSubRole(c.role, c.sub); got != c.want {
			t.Errorf("NormalizeSubRole(%s, %s) = %q, want %q", c.role, c.sub, got, c.want)
		}
	}
}

func TestEighteenSubRoles(t *testing.T) {
	total := 0
	seen := map[string]string{}
	for _, role := range Roles() {
		for _, sub := range SubRoles(role) {
			if owner, dup := seen[sub]; dup {
				t.Errorf("sub-role %s belongs to both %s and %s", sub, owner, role)
			}
			seen[sub] = role
			total++
		}
	}
	if total != 18 {
		t.Errorf("expected 18 sub-roles, got %d", total)
	}
}
