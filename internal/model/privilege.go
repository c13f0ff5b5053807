package model

// Privilege is a permission that can be assigned to users directly or via a role.
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g. "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// DefaultPrivileges seeds the permission catalog on first boot.
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Inventory
	{Code: "product:view", Name: "View Inventory"},
	{Code: "product:create", Name: "Stock In Device"},
	{Code: "product:delete", Name: "Delete Device"},
	// Sales
	{Code: "sale:view", Name: "View Sales History"},
	{Code: "sale:create", Name: "Checkout"},
	{Code: "sale:void", Name: "Void Sale"},
	// Analytics and export
	{Code: "analytics:view", Name: "View Analytics"},
	{Code: "export:view", Name: "Export Sales"},
	// Offline mirror catalog
	{Code: "mirror:manage", Name: "Manage Offline Catalog"},
}
