package auth

// Permission constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions.
const (
	// PermDashboardView allows viewing the admin dashboard.
	PermDashboardView = "dashboard.view"

	// PermOrdersManage allows viewing and managing store orders, including
	// any customer's invoice.
	PermOrdersManage = "orders.manage"

	// PermInvoiceGenerate allows generating invoices for orders.
	PermInvoiceGenerate = "invoice.generate"
	// PermInvoiceView allows viewing invoice documents beyond one's own.
	PermInvoiceView = "invoice.view"

	// PermAdminSettings allows managing the invoice settings.
	PermAdminSettings = "admin.settings"
	// PermAdminAddons allows activating and deactivating addons.
	PermAdminAddons = "admin.addons"
)

// AllPermissions lists every permission the application knows about, used
// when seeding roles.
var AllPermissions = []string{
	PermDashboardView,
	PermOrdersManage,
	PermInvoiceGenerate,
	PermInvoiceView,
	PermAdminSettings,
	PermAdminAddons,
}
