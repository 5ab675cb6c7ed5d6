package rbac

// Sub-roles select which dashboard variant renders within an already
// permitted role; they never widen the capability set.
const (
	SubSmallholderFarmer = "SMALLHOLDER_FARMER"
	SubCommercialFarmer  = "COMMERCIAL_FARMER"
	SubOrganicFarmer     = "ORGANIC_FARMER"
	SubLivestockFarmer   = "LIVESTOCK_FARMER"

	SubIndividualConsumer = "INDIVIDUAL_CONSUMER"
	SubRestaurant         = "RESTAURANT"
	SubRetailer           = "RETAILER"
	SubBulkBuyer          = "BULK_BUYER"

	SubSeedSupplier       = "SEED_SUPPLIER"
	SubEquipmentSupplier  = "EQUIPMENT_SUPPLIER"
	SubFertilizerSupplier = "FERTILIZER_SUPPLIER"

	SubFieldAgent     = "FIELD_AGENT"
	SubLogisticsAgent = "LOGISTICS_AGENT"
	SubExtensionAgent = "EXTENSION_AGENT"
	SubFinanceAgent   = "FINANCE_AGENT"

	SubSuperAdmin       = "SUPER_ADMIN"
	SubContentModerator = "CONTENT_MODERATOR"
	SubSupportAdmin     = "SUPPORT_ADMIN"
)

// First entry per role is the default fallback.
var roleSubRoles = map[string][]string{
	RoleFarmer: {
		SubSmallholderFarmer, SubCommercialFarmer,
		SubOrganicFarmer, SubLivestockFarmer,
	},
	RoleConsumer: {
		SubIndividualConsumer, SubRestaurant, SubRetailer, SubBulkBuyer,
	},
	RoleSupplier: {
		SubSeedSupplier, SubEquipmentSupplier, SubFertilizerSupplier,
	},
	RoleAgent: {
		SubFieldAgent, SubLogisticsAgent, SubExtensionAgent, SubFinanceAgent,
	},
	RoleAdmin: {
		SubSuperAdmin, SubContentModerator, SubSupportAdmin,
	},
}

// NormalizeSubRole returns subRole when it belongs to role, otherwise the
// role's default sub-role. Unknown roles get "".
func NormalizeSubRole(role, subRole string) string {
	subs, ok := roleSubRoles[role]
	if !ok || len(subs) == 0 {
		return ""
	}
	for _, s := range subs {
		if s == subRole {
			return subRole
		}
	}
	return subs[0]
}

// SubRoles returns the sub-role set for a role; callers must not mutate the
// returned slice.
func SubRoles(role string) []string {
	return roleSubRoles[role]
}
