package model

// Role groups privileges for assignment to users.
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleMasterAdmin = "MASTER_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleCashier     = "CASHIER"
)

// DefaultRoles seeds the role catalog on first boot.
var DefaultRoles = []Role{
	{
		Code:        RoleMasterAdmin,
		Name:        "Master Administrator",
		Description: "Full system access with all privileges",
	},
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Shop management without user administration",
	},
	{
		Code:        RoleCashier,
		Name:        "Cashier",
		Description: "Sell devices and view inventory",
	},
}

// CashierPrivilegeCodes are the privileges granted to the CASHIER role.
var CashierPrivilegeCodes = []string{
	"product:view",
	"sale:view",
	"sale:create",
}
