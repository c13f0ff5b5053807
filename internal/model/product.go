package model

import "github.com/google/uuid"

// Product is one physical handset in stock. Stock per model is derived:
// count of rows sharing a name. IMEI is unique per owner; the partial index
// leaves placeholder rows (empty IMEI) out of the constraint.
type Product struct {
	BaseModel
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	IMEI      string    `gorm:"column:imei;type:varchar(15);index:idx_owner_imei,unique,where:imei <> ''" json:"imei"`
	CostPrice float64   `gorm:"not null;default:0" json:"cost_price" validate:"gte=0"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_owner_imei,unique,where:imei <> ''" json:"owner_id"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// GroupedStock is the aggregate projection of unit-per-row inventory:
// one entry per model name with the derived unit count.
type GroupedStock struct {
	Name  string    `json:"name"`
	Count int       `json:"count"`
	Units []Product `json:"units,omitempty"`
}
