package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale is the historical record of one sold handset. Product fields are
// denormalized at sale time and Profit is persisted, never recomputed.
// A Sale row existing implies the matching Product row left inventory.
type Sale struct {
	BaseModel
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	IMEI        string    `gorm:"column:imei;type:varchar(15);index" json:"imei"`
	CostPrice   float64   `gorm:"not null;default:0" json:"cost_price"`
	SalePrice   float64   `gorm:"not null" json:"sale_price"`
	Profit      float64   `gorm:"not null" json:"profit"`
	SoldAt      time.Time `gorm:"not null;index" json:"sold_at"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
